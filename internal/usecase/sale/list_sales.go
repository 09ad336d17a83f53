package sale

import (
	"context"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type ListAppointmentSales struct {
	repo domain.Repository
}

func NewListAppointmentSales(repo domain.Repository) *ListAppointmentSales {
	return &ListAppointmentSales{repo: repo}
}

func (uc *ListAppointmentSales) Execute(
	ctx context.Context,
	appointmentID uint,
) ([]models.Sale, error) {
	return uc.repo.ListSalesByAppointment(ctx, appointmentID)
}
