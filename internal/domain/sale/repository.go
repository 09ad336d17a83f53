package sale

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

var ErrNotFound = httperr.ErrBusiness("sale_not_found")

type Repository interface {
	// CreateSale stores the sale with its rows. When the idempotency key
	// was already used, the stored sale is loaded into s and created is
	// false.
	CreateSale(
		ctx context.Context,
		s *models.Sale,
	) (created bool, err error)

	ListSalesByAppointment(
		ctx context.Context,
		appointmentID uint,
	) ([]models.Sale, error)
}

type CatalogRepository interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
	ListClients(ctx context.Context) ([]models.Client, error)
}
