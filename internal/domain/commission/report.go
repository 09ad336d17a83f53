package commission

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Totals struct {
	Commission   float64 `json:"total_commission"`
	Sales        float64 `json:"total_sales"`
	Commissioned int     `json:"commissioned_employees"`
}

// Filter keeps rows whose name, role or type contains query,
// case-insensitively. An empty query keeps everything.
func Filter(rows []Row, query string) []Row {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.EmployeeName), q) ||
			strings.Contains(strings.ToLower(r.Role), q) ||
			strings.Contains(strings.ToLower(r.EmployeeType), q) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize computes grand totals over rows as given; callers pass the
// filtered set.
func Summarize(rows []Row) Totals {
	sales := decimal.Zero
	commission := decimal.Zero
	var t Totals

	for _, r := range rows {
		sales = sales.Add(decimal.NewFromFloat(r.TotalSales))
		commission = commission.Add(decimal.NewFromFloat(r.TotalCommission))
		if r.CommissionPercent != nil && *r.CommissionPercent != 0 {
			t.Commissioned++
		}
	}

	t.Sales = sales.InexactFloat64()
	t.Commission = commission.InexactFloat64()
	return t
}
