// Package services holds the dashboard controller: one stateless
// rendering pass per request, running every query the view needs in
// sequence and degrading each failure to a well-typed empty value.
package services

import (
	"context"
	"log/slog"
	"time"

	"salesdash/internal/core"
	"salesdash/internal/metrics"
	"salesdash/internal/storage"
)

// SalesReader is the query surface the dashboard renders from.
// *storage.Repository implements it; tests substitute fakes.
type SalesReader interface {
	DateBounds(ctx context.Context) (core.DateRange, error)
	Categories(ctx context.Context) ([]string, error)
	Summary(ctx context.Context, f core.Filter) (core.Summary, error)
	RevenueByDay(ctx context.Context, f core.Filter) ([]core.RevenuePoint, error)
	RevenueByCategory(ctx context.Context, f core.Filter) ([]core.CategoryRevenue, error)
	TopProducts(ctx context.Context, f core.Filter) ([]core.ProductRevenue, error)
	RawRows(ctx context.Context, f core.Filter) (core.Table, error)
}

// Dashboard is the complete view model for one rendering pass. Every
// field is always populated; a failed query leaves its empty default
// and adds a notice.
type Dashboard struct {
	Filter       core.Filter
	Summary      core.Summary
	DailyRevenue []core.RevenuePoint
	ByCategory   []core.CategoryRevenue
	TopProducts  []core.ProductRevenue
	RawRows      core.Table
	Notices      []string
}

// FilterOptions carries the defaults for the filter controls.
type FilterOptions struct {
	Bounds     core.DateRange
	Categories []string
	Notices    []string
}

// DashboardService orchestrates the rendering pass. reader is nil when
// the store could not be opened at startup; the service then serves
// fully degraded results so the page still renders.
type DashboardService struct {
	reader  SalesReader
	timeout time.Duration
}

func NewDashboardService(reader SalesReader, timeout time.Duration) *DashboardService {
	return &DashboardService{reader: reader, timeout: timeout}
}

// Available reports whether the sales store was reachable at startup.
func (s *DashboardService) Available() bool {
	return s.reader != nil
}

// FilterOptions loads the date-picker bounds and the category selector
// values. Degrades to an empty range and the bare sentinel list.
func (s *DashboardService) FilterOptions(ctx context.Context) FilterOptions {
	opts := FilterOptions{Categories: []string{}}
	if s.reader == nil {
		opts.Notices = append(opts.Notices, core.ErrStoreUnavailable.Error())
		return opts
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	bounds, err := s.reader.DateBounds(cctx)
	if err != nil {
		slog.ErrorContext(ctx, "Date bounds query failed", "error", err)
		opts.Notices = append(opts.Notices, "date range unavailable")
	} else {
		opts.Bounds = bounds
	}

	categories, err := s.reader.Categories(cctx)
	if err != nil {
		slog.ErrorContext(ctx, "Categories query failed", "error", err)
		opts.Notices = append(opts.Notices, "category list unavailable")
	} else {
		opts.Categories = categories
	}

	return opts
}

// Render runs one full dashboard pass for the given filter. Queries run
// sequentially; nothing is cached or reused across passes and nothing
// is retried. Each failure is logged, converted to that operation's
// empty default, and surfaced as a notice; the pass always completes.
func (s *DashboardService) Render(ctx context.Context, f core.Filter) Dashboard {
	d := Dashboard{
		Filter:       f,
		Summary:      core.EmptySummary(),
		DailyRevenue: []core.RevenuePoint{},
		ByCategory:   []core.CategoryRevenue{},
		TopProducts:  []core.ProductRevenue{},
		RawRows:      core.NewTable(storage.RawColumns...),
	}

	if s.reader == nil {
		d.Notices = append(d.Notices, core.ErrStoreUnavailable.Error())
		metrics.DegradedRenders.Inc()
		return d
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if summary, err := s.reader.Summary(cctx, f); err != nil {
		slog.ErrorContext(ctx, "Summary query failed", "error", err, "filter", f.Category)
		d.Notices = append(d.Notices, "key metrics unavailable")
	} else {
		d.Summary = summary
	}

	if points, err := s.reader.RevenueByDay(cctx, f); err != nil {
		slog.ErrorContext(ctx, "Revenue time series query failed", "error", err, "filter", f.Category)
		d.Notices = append(d.Notices, "revenue over time unavailable")
	} else {
		d.DailyRevenue = points
	}

	if byCat, err := s.reader.RevenueByCategory(cctx, f); err != nil {
		slog.ErrorContext(ctx, "Revenue by category query failed", "error", err, "filter", f.Category)
		d.Notices = append(d.Notices, "revenue by category unavailable")
	} else {
		d.ByCategory = byCat
	}

	if top, err := s.reader.TopProducts(cctx, f); err != nil {
		slog.ErrorContext(ctx, "Top products query failed", "error", err, "filter", f.Category)
		d.Notices = append(d.Notices, "top products unavailable")
	} else {
		d.TopProducts = top
	}

	if raw, err := s.reader.RawRows(cctx, f); err != nil {
		slog.ErrorContext(ctx, "Raw rows query failed", "error", err, "filter", f.Category)
		d.Notices = append(d.Notices, "raw data unavailable")
	} else {
		d.RawRows = raw
	}

	if len(d.Notices) > 0 {
		metrics.DegradedRenders.Inc()
	}
	return d
}
