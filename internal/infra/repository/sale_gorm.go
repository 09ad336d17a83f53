package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

// --------------------------------------------------
// Sales
// --------------------------------------------------

func (r *SaleGormRepository) CreateSale(
	ctx context.Context,
	s *models.Sale,
) (bool, error) {

	if s.IdempotencyKey != nil {
		found, err := r.findByKey(ctx, *s.IdempotencyKey)
		if err != nil {
			return false, err
		}
		if found != nil {
			*s = *found
			return false, nil
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(s).Error
	})

	// Lost a race against a concurrent retry with the same key.
	if err != nil && s.IdempotencyKey != nil && IsUniqueViolation(err) {
		found, ferr := r.findByKey(ctx, *s.IdempotencyKey)
		if ferr != nil {
			return false, ferr
		}
		if found != nil {
			*s = *found
			return false, nil
		}
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SaleGormRepository) findByKey(ctx context.Context, key string) (*models.Sale, error) {
	var s models.Sale
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Preload("Payments").
		Where("idempotency_key = ?", key).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleGormRepository) ListSalesByAppointment(
	ctx context.Context,
	appointmentID uint,
) ([]models.Sale, error) {

	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Preload("Payments").
		Where("appointment_id = ?", appointmentID).
		Order("id ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *SaleGormRepository) ListArticles(ctx context.Context) ([]models.Article, error) {
	var out []models.Article
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *SaleGormRepository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *SaleGormRepository) ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var out []models.PaymentMethod
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *SaleGormRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

var (
	_ domain.Repository        = (*SaleGormRepository)(nil)
	_ domain.CatalogRepository = (*SaleGormRepository)(nil)
)
