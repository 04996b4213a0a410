package http

import (
	"log/slog"
	"net/http"
	"time"

	"salesdash/internal/core"
)

// handleIndex renders the dashboard page shell: filter controls
// defaulted from the store's date bounds and category list, with the
// dashboard partial loaded over HTMX.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	opts := s.dashboard.FilterOptions(r.Context())
	bounds := opts.Bounds
	if bounds.Empty() {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		bounds = core.DateRange{Start: today, End: today}
	}

	data := struct {
		StartDate     string
		EndDate       string
		Categories    []string
		AllCategories string
		Notices       []string
	}{
		StartDate:     bounds.Start.Format(core.DateLayout),
		EndDate:       bounds.End.Format(core.DateLayout),
		Categories:    opts.Categories,
		AllCategories: core.AllCategories,
		Notices:       opts.Notices,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// barRow is one bar of a server-rendered chart: label, formatted
// amount, and width as a rounded percent of the chart's maximum.
type barRow struct {
	Label  string
	Amount string
	Width  int
}

type dashboardView struct {
	Start    string
	End      string
	Category string

	TotalRevenue  string
	TotalOrders   string
	AvgOrderValue string
	TopCategory   string

	Daily      []barRow
	ByCategory []barRow
	Products   []barRow
	Raw        core.Table
	Notices    []string
}

// handleDashboard renders the dashboard partial for the current filter.
// Every request re-runs every query; nothing is cached between passes.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter := s.parseFilter(r)
	d := s.dashboard.Render(r.Context(), filter)

	view := dashboardView{
		Start:         filter.Range.Start.Format(core.DateLayout),
		End:           filter.Range.End.Format(core.DateLayout),
		Category:      filter.Category,
		TotalRevenue:  d.Summary.TotalRevenue.Format(),
		TotalOrders:   core.FormatCount(d.Summary.TotalOrders),
		AvgOrderValue: d.Summary.AvgOrderValue.Format(),
		TopCategory:   d.Summary.TopCategory,
		Daily:         dailyBars(d.DailyRevenue),
		ByCategory:    categoryBars(d.ByCategory),
		Products:      productBars(d.TopProducts),
		Raw:           d.RawRows,
		Notices:       d.Notices,
	}

	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed",
			"error", err, "template", "dashboard.html", "category", filter.Category)
		_, _ = w.Write([]byte(`<section id="dashboard"><div class="placeholder">Error rendering dashboard</div></section>`))
	}
}

// parseFilter reads the filter controls from the query string. Missing
// or malformed dates fall back to the store's full date bounds so a
// bare request renders the complete dataset.
func (s *Server) parseFilter(r *http.Request) core.Filter {
	q := r.URL.Query()

	category := q.Get("category")
	if category == "" {
		category = core.AllCategories
	}

	start, startErr := core.ParseDate(q.Get("start"))
	end, endErr := core.ParseDate(q.Get("end"))
	if startErr != nil || endErr != nil {
		bounds := s.dashboard.FilterOptions(r.Context()).Bounds
		if startErr != nil {
			start = bounds.Start
		}
		if endErr != nil {
			end = bounds.End
		}
	}

	return core.Filter{
		Range:    core.DateRange{Start: start, End: end},
		Category: category,
	}
}
