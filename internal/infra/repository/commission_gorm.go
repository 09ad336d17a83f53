package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/commission"
)

type CommissionGormRepository struct {
	db *gorm.DB
}

func NewCommissionGormRepository(db *gorm.DB) *CommissionGormRepository {
	return &CommissionGormRepository{db: db}
}

type feedRecord struct {
	EmployeeID        uint
	EmployeeName      string
	Role              string
	EmployeeType      string
	CommissionPercent *float64
	Bucket            time.Time
	TotalSales        decimal.Decimal
	TotalCommission   decimal.Decimal
}

// One row per employee per sale day.
const commissionFeedSQL = `
SELECT e.id                         AS employee_id,
       e.name                       AS employee_name,
       e.role                       AS role,
       COALESCE(et.name, '')        AS employee_type,
       et.commission_percent        AS commission_percent,
       DATE(s.sold_at)              AS bucket,
       SUM(li.quantity * li.unit_price) AS total_sales,
       SUM(li.quantity * li.unit_price * COALESCE(et.commission_percent, 0) / 100) AS total_commission
FROM sale_line_items li
JOIN sales s            ON s.id = li.sale_id
JOIN employees e        ON e.id = li.employee_id
LEFT JOIN employee_types et ON et.id = e.employee_type_id
WHERE s.sold_at >= ? AND s.sold_at < ?
GROUP BY e.id, e.name, e.role, et.name, et.commission_percent, DATE(s.sold_at)
ORDER BY DATE(s.sold_at) ASC, e.id ASC`

func (r *CommissionGormRepository) CommissionFeed(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]domain.RawRow, error) {

	var recs []feedRecord
	if err := r.db.WithContext(ctx).
		Raw(commissionFeedSQL, from, to).
		Scan(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]domain.RawRow, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.RawRow{
			EmployeeID:        rec.EmployeeID,
			EmployeeName:      rec.EmployeeName,
			Role:              rec.Role,
			EmployeeType:      rec.EmployeeType,
			CommissionPercent: rec.CommissionPercent,
			Bucket:            rec.Bucket.Format("2006-01-02"),
			TotalSales:        rec.TotalSales.Round(2).InexactFloat64(),
			TotalCommission:   rec.TotalCommission.Round(2).InexactFloat64(),
		})
	}
	return out, nil
}

var _ domain.Repository = (*CommissionGormRepository)(nil)
