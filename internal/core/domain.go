package core

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// AllCategories is the sentinel category value meaning "no category filter".
const AllCategories = "All Categories"

// NoTopCategory is shown when the filtered window contains no orders.
const NoTopCategory = "N/A"

// DateLayout is the wire format for order dates (ISO calendar date).
const DateLayout = "2006-01-02"

var (
	ErrStoreUnavailable = errors.New("sales store unavailable")
	ErrInvalidDate      = errors.New("invalid date")
)

type (
	// DateRange is a closed interval of calendar dates. An inverted range
	// (Start after End) is legal and simply matches nothing.
	DateRange struct {
		Start time.Time
		End   time.Time
	}

	// Filter is the aggregation window applied uniformly to every
	// dashboard query: a date range plus an optional category.
	Filter struct {
		Range    DateRange
		Category string
	}

	// Summary holds the headline metrics for one aggregation window.
	Summary struct {
		TotalRevenue  Money
		TotalOrders   int64
		AvgOrderValue Money
		TopCategory   string
	}

	// RevenuePoint is one calendar day of summed revenue in the time
	// series. Days with no sales are absent, not zero-valued.
	RevenuePoint struct {
		Day     time.Time
		Revenue Money
	}

	// CategoryRevenue is summed revenue for one category.
	CategoryRevenue struct {
		Category string
		Revenue  Money
	}

	// ProductRevenue is summed revenue for one product.
	ProductRevenue struct {
		Product string
		Revenue Money
	}
)

// NewDate builds a midnight-UTC calendar date.
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Empty reports whether either bound is missing.
func (r DateRange) Empty() bool {
	return r.Start.IsZero() || r.End.IsZero()
}

// AllCategories reports whether the filter includes every category.
func (f Filter) AllCategories() bool {
	c := strings.TrimSpace(f.Category)
	return c == "" || c == AllCategories
}

// EmptySummary is the zero-valued summary used when a window has no
// orders or a query degrades: zero revenue, zero orders, average order
// value defined as zero, and the N/A top-category sentinel.
func EmptySummary() Summary {
	return Summary{TopCategory: NoTopCategory}
}

// Capitalize upper-cases the leading letter and lower-cases the rest,
// matching how category values are presented in the filter selector.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
