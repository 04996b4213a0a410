package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salesdash/internal/core"
	"salesdash/internal/services"
	"salesdash/internal/storage"
)

// fakeReader serves a fixed two-order dataset.
type fakeReader struct {
	failAll bool
}

var errStore = errors.New("store down")

func (f *fakeReader) DateBounds(ctx context.Context) (core.DateRange, error) {
	if f.failAll {
		return core.DateRange{}, errStore
	}
	return core.DateRange{Start: core.NewDate(2024, 1, 1), End: core.NewDate(2024, 1, 2)}, nil
}

func (f *fakeReader) Categories(ctx context.Context) ([]string, error) {
	if f.failAll {
		return nil, errStore
	}
	return []string{"A", "B"}, nil
}

func (f *fakeReader) Summary(ctx context.Context, _ core.Filter) (core.Summary, error) {
	if f.failAll {
		return core.EmptySummary(), errStore
	}
	return core.Summary{
		TotalRevenue:  core.Money{Cents: 2500},
		TotalOrders:   2,
		AvgOrderValue: core.Money{Cents: 1250},
		TopCategory:   "A",
	}, nil
}

func (f *fakeReader) RevenueByDay(ctx context.Context, _ core.Filter) ([]core.RevenuePoint, error) {
	if f.failAll {
		return nil, errStore
	}
	return []core.RevenuePoint{
		{Day: core.NewDate(2024, 1, 1), Revenue: core.Money{Cents: 2000}},
		{Day: core.NewDate(2024, 1, 2), Revenue: core.Money{Cents: 500}},
	}, nil
}

func (f *fakeReader) RevenueByCategory(ctx context.Context, _ core.Filter) ([]core.CategoryRevenue, error) {
	if f.failAll {
		return nil, errStore
	}
	return []core.CategoryRevenue{
		{Category: "A", Revenue: core.Money{Cents: 2000}},
		{Category: "B", Revenue: core.Money{Cents: 500}},
	}, nil
}

func (f *fakeReader) TopProducts(ctx context.Context, _ core.Filter) ([]core.ProductRevenue, error) {
	if f.failAll {
		return nil, errStore
	}
	return []core.ProductRevenue{{Product: "X", Revenue: core.Money{Cents: 2000}}}, nil
}

func (f *fakeReader) RawRows(ctx context.Context, _ core.Filter) (core.Table, error) {
	if f.failAll {
		return core.NewTable(storage.RawColumns...), errStore
	}
	table := core.NewTable(storage.RawColumns...)
	table.Append("1", "2024-01-01", "c-1", "Customer 1", "p-X", "X", "A", "2", "10", "20")
	return table, nil
}

func newTestServer(reader services.SalesReader) *Server {
	svc := services.NewDashboardService(reader, time.Second)
	var ping func(context.Context) error
	if reader != nil {
		ping = func(context.Context) error { return nil }
	}
	return NewServer(":0", svc, ping)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(&fakeReader{})

	rr := get(t, srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("index status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Sales Performance Dashboard") {
		t.Error("index body missing heading")
	}
	if !strings.Contains(body, `value="2024-01-01"`) || !strings.Contains(body, `value="2024-01-02"`) {
		t.Error("date pickers not defaulted from store bounds")
	}
	if !strings.Contains(body, core.AllCategories) {
		t.Error("selector missing the no-filter sentinel")
	}

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rr := get(t, srv, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rr.Code)
		}
	}
}

func TestIndexUnknownPathIs404(t *testing.T) {
	srv := newTestServer(&fakeReader{})
	if rr := get(t, srv, "/nope"); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestDashboardPartial(t *testing.T) {
	srv := newTestServer(&fakeReader{})

	rr := get(t, srv, "/ui/dashboard?start=2024-01-01&end=2024-01-02&category=All+Categories")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"$25.00", "$12.50", "Top Category", ">A<", "Revenue Over Time", "Customer 1", "order_id"} {
		if !strings.Contains(body, want) {
			t.Errorf("partial missing %q", want)
		}
	}
	if strings.Contains(body, "unavailable") {
		t.Errorf("unexpected degradation notice in %s", body)
	}
}

func TestDashboardPartialDefaultsMissingFilter(t *testing.T) {
	srv := newTestServer(&fakeReader{})

	// No query parameters: dates fall back to the store's bounds.
	rr := get(t, srv, "/ui/dashboard")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "$25.00") {
		t.Error("defaulted filter did not render the dataset")
	}
}

func TestDashboardDegradedWithoutStore(t *testing.T) {
	srv := newTestServer(nil)

	rr := get(t, srv, "/ui/dashboard?start=2024-01-01&end=2024-01-02")
	if rr.Code != http.StatusOK {
		t.Fatalf("degraded partial must still render, status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, core.ErrStoreUnavailable.Error()) {
		t.Error("missing degradation notice")
	}
	if !strings.Contains(body, "$0.00") || !strings.Contains(body, core.NoTopCategory) {
		t.Error("degraded metrics should show zero values and the N/A sentinel")
	}
	// Raw table keeps its headers even with no store.
	if !strings.Contains(body, "order_id") {
		t.Error("degraded raw table lost its column headers")
	}

	if rr := get(t, srv, "/readyz"); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded readyz status = %d, want 503", rr.Code)
	}
}

func TestDashboardDegradedPerQuery(t *testing.T) {
	srv := newTestServer(&fakeReader{failAll: true})

	rr := get(t, srv, "/ui/dashboard?start=2024-01-01&end=2024-01-02")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"key metrics unavailable", "revenue over time unavailable", "raw data unavailable"} {
		if !strings.Contains(body, want) {
			t.Errorf("partial missing notice %q", want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	srv := newTestServer(&fakeReader{})

	var last int
	for i := 0; i < 61; i++ {
		last = get(t, srv, "/ui/dashboard?start=2024-01-01&end=2024-01-02").Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("61st request status = %d, want 429", last)
	}
}

func TestRateLimiterRecoversAfterWindow(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("client") {
			t.Fatalf("request %d unexpectedly limited", i)
		}
	}
	if rl.allow("client") {
		t.Fatal("request 61 should be limited")
	}

	// A stale window resets the counter.
	rl.mu.Lock()
	rl.clients["client"].lastRequest = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()
	if !rl.allow("client") {
		t.Fatal("expired window should reset the limit")
	}
}
