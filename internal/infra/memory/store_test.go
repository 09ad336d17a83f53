package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apdomain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/commission"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

func seeded() *Store {
	s := NewStore()
	s.Seed(DemoSeed())
	return s
}

func saleAt(soldAt time.Time, lines ...models.SaleLineItem) *models.Sale {
	return &models.Sale{ClientID: 1, SoldAt: soldAt, LineItems: lines}
}

func TestStore_AppointmentLifecycle(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	_, err := s.GetAppointment(ctx, 1)
	assert.ErrorIs(t, err, apdomain.ErrNotFound)

	ap := &models.Appointment{ClientID: 1, Title: "Haircut"}
	require.NoError(t, s.CreateAppointment(ctx, ap))
	assert.Equal(t, uint(1), ap.ID)
	assert.Equal(t, "scheduled", ap.Status)

	ap.Title = "Color"
	require.NoError(t, s.UpdateAppointment(ctx, ap))

	got, err := s.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "Color", got.Title)

	assert.ErrorIs(t, s.UpdateAppointment(ctx, &models.Appointment{ID: 42}), apdomain.ErrNotFound)
}

func TestStore_SaleIdempotencyKey(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	apID := uint(3)
	key := "abc"
	first := saleAt(time.Now(), models.SaleLineItem{ArticleID: 1, Quantity: 1, UnitPrice: 45, EmployeeID: 1})
	first.AppointmentID = &apID
	first.IdempotencyKey = &key

	created, err := s.CreateSale(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, first.ID, first.LineItems[0].SaleID)

	retry := saleAt(time.Now())
	retry.IdempotencyKey = &key
	created, err = s.CreateSale(ctx, retry)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, retry.ID)
	assert.Len(t, retry.LineItems, 1)

	has, _ := s.HasSaleForAppointment(ctx, apID)
	assert.True(t, has)
	has, _ = s.HasSaleForAppointment(ctx, 99)
	assert.False(t, has)
}

func TestStore_CommissionFeedBucketsPerDay(t *testing.T) {
	s := seeded()
	ctx := context.Background()
	loc := time.UTC

	day1 := time.Date(2025, 3, 10, 10, 0, 0, 0, loc)
	day2 := time.Date(2025, 3, 11, 15, 0, 0, 0, loc)
	outside := time.Date(2025, 4, 1, 9, 0, 0, 0, loc)

	// Ana is a 30% stylist, Carla an assistant without commission.
	_, _ = s.CreateSale(ctx, saleAt(day1,
		models.SaleLineItem{ArticleID: 1, Quantity: 1, UnitPrice: 45, EmployeeID: 1},
		models.SaleLineItem{ArticleID: 3, Quantity: 2, UnitPrice: 12.5, EmployeeID: 3},
	))
	_, _ = s.CreateSale(ctx, saleAt(day2,
		models.SaleLineItem{ArticleID: 1, Quantity: 1, UnitPrice: 50, EmployeeID: 1},
	))
	_, _ = s.CreateSale(ctx, saleAt(outside,
		models.SaleLineItem{ArticleID: 1, Quantity: 1, UnitPrice: 99, EmployeeID: 1},
	))

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, loc)
	raw, err := s.CommissionFeed(ctx, from, to)
	require.NoError(t, err)

	require.Len(t, raw, 3)
	assert.Equal(t, uint(1), raw[0].EmployeeID)
	assert.Equal(t, "2025-03-10", raw[0].Bucket)
	assert.Equal(t, "45.00", raw[0].TotalSales)
	assert.Equal(t, "13.50", raw[0].TotalCommission)
	assert.Equal(t, "Stylist", raw[0].EmployeeType)

	assert.Equal(t, uint(3), raw[1].EmployeeID)
	assert.Nil(t, raw[1].CommissionPercent)
	assert.Equal(t, "25.00", raw[1].TotalSales)
	assert.Equal(t, "0.00", raw[1].TotalCommission)

	assert.Equal(t, "2025-03-11", raw[2].Bucket)

	merged := commission.Merge(raw)
	require.Len(t, merged, 2)
	assert.Equal(t, 95.0, merged[0].TotalSales)
	assert.Equal(t, 28.5, merged[0].TotalCommission)
}

func TestStore_CatalogListsActiveOnly(t *testing.T) {
	s := NewStore()
	s.Seed(Seed{
		Articles: []models.Article{
			{ID: 1, Name: "Haircut", Price: 45, Active: true},
			{ID: 2, Name: "Retired", Price: 10, Active: false},
		},
	})

	list, err := s.ListArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Haircut", list[0].Name)
}
