package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"salesdash/internal/core"
	"salesdash/internal/metrics"
)

// RawColumns is the fallback column set for the raw-data table when the
// query itself cannot supply result-set metadata (degraded render).
var RawColumns = []string{
	"order_id", "order_date", "customer_id", "customer_name",
	"product_id", "product_names", "categories", "quantity", "price",
	"revenue",
}

// filterWhere builds the shared predicate: order_date within the window
// and, unless the sentinel is selected, a case-insensitive category
// match (selector values are capitalized; stored rows may not be).
func filterWhere(f core.Filter) (string, []any) {
	where := "order_date BETWEEN ? AND ?"
	args := []any{
		f.Range.Start.Format(core.DateLayout),
		f.Range.End.Format(core.DateLayout),
	}
	if !f.AllCategories() {
		where += " AND lower(categories) = lower(?)"
		args = append(args, f.Category)
	}
	return where, args
}

// observe records query duration and outcome for one operation.
func observe(op string, start time.Time, err error) {
	metrics.QueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueryErrors.WithLabelValues(op).Inc()
	}
}

// DateBounds returns the minimum and maximum order date over the whole
// table, ignoring any category filter. An empty table yields an empty
// range and no error.
func (r *Repository) DateBounds(ctx context.Context) (core.DateRange, error) {
	var bounds core.DateRange
	start := time.Now()
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		var minDate, maxDate sql.NullString
		row := conn.QueryRowContext(ctx,
			`SELECT MIN(order_date), MAX(order_date) FROM sales_data`)
		if err := row.Scan(&minDate, &maxDate); err != nil {
			return fmt.Errorf("scan date bounds: %w", err)
		}
		if !minDate.Valid || !maxDate.Valid {
			return nil
		}
		lo, err := core.ParseDate(minDate.String)
		if err != nil {
			return fmt.Errorf("parse min order_date %q: %w", minDate.String, err)
		}
		hi, err := core.ParseDate(maxDate.String)
		if err != nil {
			return fmt.Errorf("parse max order_date %q: %w", maxDate.String, err)
		}
		bounds = core.DateRange{Start: lo, End: hi}
		return nil
	})
	observe("date_bounds", start, err)
	return bounds, err
}

// Categories returns the distinct category values, lexicographically
// sorted and presented with leading-letter capitalization.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	start := time.Now()
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT DISTINCT categories FROM sales_data ORDER BY categories`)
		if err != nil {
			return fmt.Errorf("query categories: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var c string
			if err := rows.Scan(&c); err != nil {
				return fmt.Errorf("scan category: %w", err)
			}
			categories = append(categories, core.Capitalize(c))
		}
		return rows.Err()
	})
	observe("categories", start, err)
	return categories, err
}

// Summary computes the headline metrics for the filtered window. The
// top category is the highest per-category revenue sum; exact revenue
// ties break toward the lexicographically smaller category name.
// Average order value is defined as zero when the window has no orders.
func (r *Repository) Summary(ctx context.Context, f core.Filter) (core.Summary, error) {
	summary := core.EmptySummary()
	where, args := filterWhere(f)
	query := `
		WITH filtered AS (
			SELECT order_id, categories, price * quantity AS revenue
			FROM sales_data
			WHERE ` + where + `
		),
		category_totals AS (
			SELECT categories, SUM(revenue) AS category_revenue
			FROM filtered
			GROUP BY categories
		),
		top_category AS (
			SELECT categories
			FROM category_totals
			ORDER BY category_revenue DESC, categories ASC
			LIMIT 1
		)
		SELECT
			COALESCE(SUM(revenue), 0),
			COUNT(DISTINCT order_id),
			(SELECT categories FROM top_category)
		FROM filtered`

	start := time.Now()
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		var (
			revenue float64
			orders  int64
			top     sql.NullString
		)
		if err := conn.QueryRowContext(ctx, query, args...).Scan(&revenue, &orders, &top); err != nil {
			return fmt.Errorf("scan summary: %w", err)
		}
		summary.TotalRevenue = core.MoneyFromDollars(revenue)
		summary.TotalOrders = orders
		if orders > 0 {
			summary.AvgOrderValue = core.Money{Cents: summary.TotalRevenue.Cents / orders}
		}
		if top.Valid {
			summary.TopCategory = top.String
		}
		return nil
	})
	observe("summary", start, err)
	if err != nil {
		return core.EmptySummary(), err
	}
	return summary, nil
}

// RevenueByDay returns per-day summed revenue ascending by date. Days
// with no sales are absent from the series.
func (r *Repository) RevenueByDay(ctx context.Context, f core.Filter) ([]core.RevenuePoint, error) {
	points := []core.RevenuePoint{}
	where, args := filterWhere(f)
	query := `
		SELECT DATE(order_date) AS day, SUM(price * quantity) AS revenue
		FROM sales_data
		WHERE ` + where + `
		GROUP BY DATE(order_date)
		ORDER BY day`

	start := time.Now()
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query revenue by day: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				day     string
				revenue float64
			)
			if err := rows.Scan(&day, &revenue); err != nil {
				return fmt.Errorf("scan revenue point: %w", err)
			}
			d, err := core.ParseDate(day)
			if err != nil {
				return fmt.Errorf("parse day %q: %w", day, err)
			}
			points = append(points, core.RevenuePoint{Day: d, Revenue: core.MoneyFromDollars(revenue)})
		}
		return rows.Err()
	})
	observe("revenue_by_day", start, err)
	return points, err
}

// RevenueByCategory returns per-category summed revenue, descending.
func (r *Repository) RevenueByCategory(ctx context.Context, f core.Filter) ([]core.CategoryRevenue, error) {
	result := []core.CategoryRevenue{}
	where, args := filterWhere(f)
	query := `
		SELECT categories, SUM(price * quantity) AS revenue
		FROM sales_data
		WHERE ` + where + `
		GROUP BY categories
		ORDER BY revenue DESC`

	start := time.Now()
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query revenue by category: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				category string
				revenue  float64
			)
			if err := rows.Scan(&category, &revenue); err != nil {
				return fmt.Errorf("scan category revenue: %w", err)
			}
			result = append(result, core.CategoryRevenue{Category: category, Revenue: core.MoneyFromDollars(revenue)})
		}
		return rows.Err()
	})
	observe("revenue_by_category", start, err)
	return result, err
}

// TopProducts returns the ten highest-revenue products, descending.
func (r *Repository) TopProducts(ctx context.Context, f core.Filter) ([]core.ProductRevenue, error) {
	result := []core.ProductRevenue{}
	where, args := filterWhere(f)
	query := `
		SELECT product_names, SUM(price * quantity) AS revenue
		FROM sales_data
		WHERE ` + where + `
		GROUP BY product_names
		ORDER BY revenue DESC
		LIMIT 10`

	start := time.Now()
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query top products: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				product string
				revenue float64
			)
			if err := rows.Scan(&product, &revenue); err != nil {
				return fmt.Errorf("scan product revenue: %w", err)
			}
			result = append(result, core.ProductRevenue{Product: product, Revenue: core.MoneyFromDollars(revenue)})
		}
		return rows.Err()
	})
	observe("top_products", start, err)
	return result, err
}

// RawRows returns every matching row plus the computed revenue column,
// ascending by (order_date, order_id). Column names come from the
// result-set metadata so source-table additions flow through untouched.
func (r *Repository) RawRows(ctx context.Context, f core.Filter) (core.Table, error) {
	table := core.NewTable(RawColumns...)
	where, args := filterWhere(f)
	query := `
		SELECT sales_data.*, price * quantity AS revenue
		FROM sales_data
		WHERE ` + where + `
		ORDER BY order_date, order_id`

	start := time.Now()
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query raw rows: %w", err)
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("read result columns: %w", err)
		}
		table = core.NewTable(cols...)

		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		for rows.Next() {
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("scan raw row: %w", err)
			}
			row := make([]string, len(cols))
			for i, v := range values {
				row[i] = formatValue(v)
			}
			table.Append(row...)
		}
		return rows.Err()
	})
	observe("raw_rows", start, err)
	if err != nil {
		return core.NewTable(RawColumns...), err
	}
	return table, nil
}

// formatValue renders a driver value for the raw-data table.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(core.DateLayout)
	default:
		return fmt.Sprintf("%v", x)
	}
}
