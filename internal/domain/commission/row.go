package commission

import (
	"context"
	"time"
)

// RawRow is one bucket of the commission feed. Totals arrive loosely
// typed: numbers, numeric strings, null or missing.
type RawRow struct {
	EmployeeID        uint     `json:"employee_id"`
	EmployeeName      string   `json:"employee_name"`
	Role              string   `json:"role"`
	EmployeeType      string   `json:"employee_type"`
	CommissionPercent *float64 `json:"commission_percent"`
	Bucket            string   `json:"bucket,omitempty"`
	TotalSales        any      `json:"total_sales"`
	TotalCommission   any      `json:"total_commission"`
}

// Row is the merged, one-per-employee view.
type Row struct {
	EmployeeID        uint     `json:"employee_id"`
	EmployeeName      string   `json:"employee_name"`
	Role              string   `json:"role"`
	EmployeeType      string   `json:"employee_type"`
	CommissionPercent *float64 `json:"commission_percent"`
	TotalSales        float64  `json:"total_sales"`
	TotalCommission   float64  `json:"total_commission"`
}

// Repository produces the raw feed for sales sold in [from, to).
type Repository interface {
	CommissionFeed(ctx context.Context, from, to time.Time) ([]RawRow, error)
}
