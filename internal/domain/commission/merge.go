package commission

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Merge collapses the feed into one row per employee, in first-seen order.
// Descriptive fields come from the first row; totals are summed.
func Merge(raw []RawRow) []Row {
	type acc struct {
		row        Row
		sales      decimal.Decimal
		commission decimal.Decimal
	}

	index := make(map[uint]int, len(raw))
	merged := make([]*acc, 0, len(raw))

	for _, r := range raw {
		i, seen := index[r.EmployeeID]
		if !seen {
			index[r.EmployeeID] = len(merged)
			merged = append(merged, &acc{
				row: Row{
					EmployeeID:        r.EmployeeID,
					EmployeeName:      r.EmployeeName,
					Role:              r.Role,
					EmployeeType:      r.EmployeeType,
					CommissionPercent: r.CommissionPercent,
				},
				sales:      Coerce(r.TotalSales),
				commission: Coerce(r.TotalCommission),
			})
			continue
		}
		a := merged[i]
		a.sales = a.sales.Add(Coerce(r.TotalSales))
		a.commission = a.commission.Add(Coerce(r.TotalCommission))
	}

	out := make([]Row, 0, len(merged))
	for _, a := range merged {
		a.row.TotalSales = a.sales.InexactFloat64()
		a.row.TotalCommission = a.commission.InexactFloat64()
		out = append(out, a.row)
	}
	return out
}

// Coerce turns a loosely typed feed value into a decimal; anything
// missing or non-numeric is zero.
func Coerce(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case uint:
		return decimal.NewFromInt(int64(n))
	case json.Number:
		return parseDecimal(n.String())
	case string:
		return parseDecimal(n)
	case decimal.Decimal:
		return n
	}
	return decimal.Zero
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
