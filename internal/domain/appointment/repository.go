package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

var ErrNotFound = httperr.ErrBusiness("appointment_not_found")

type Repository interface {
	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Completion guard --------
	HasSaleForAppointment(
		ctx context.Context,
		appointmentID uint,
	) (bool, error)
}
