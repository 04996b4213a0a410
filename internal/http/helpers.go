package http

import (
	"salesdash/internal/core"
)

// barWidth converts an amount to a rounded percent of the chart
// maximum, clamped so tiny non-zero bars stay visible.
func barWidth(cents, maxCents int64) int {
	if maxCents <= 0 || cents <= 0 {
		return 0
	}
	width := int((cents*100 + maxCents/2) / maxCents)
	if width > 0 && width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

func dailyBars(points []core.RevenuePoint) []barRow {
	var max int64
	for _, p := range points {
		if p.Revenue.Cents > max {
			max = p.Revenue.Cents
		}
	}
	bars := make([]barRow, 0, len(points))
	for _, p := range points {
		bars = append(bars, barRow{
			Label:  p.Day.Format(core.DateLayout),
			Amount: p.Revenue.Format(),
			Width:  barWidth(p.Revenue.Cents, max),
		})
	}
	return bars
}

func categoryBars(rows []core.CategoryRevenue) []barRow {
	var max int64
	for _, c := range rows {
		if c.Revenue.Cents > max {
			max = c.Revenue.Cents
		}
	}
	bars := make([]barRow, 0, len(rows))
	for _, c := range rows {
		bars = append(bars, barRow{
			Label:  c.Category,
			Amount: c.Revenue.Format(),
			Width:  barWidth(c.Revenue.Cents, max),
		})
	}
	return bars
}

func productBars(rows []core.ProductRevenue) []barRow {
	var max int64
	for _, p := range rows {
		if p.Revenue.Cents > max {
			max = p.Revenue.Cents
		}
	}
	bars := make([]barRow, 0, len(rows))
	for _, p := range rows {
		bars = append(bars, barRow{
			Label:  p.Product,
			Amount: p.Revenue.Format(),
			Width:  barWidth(p.Revenue.Cents, max),
		})
	}
	return bars
}
