package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
)

// ======================================================
// COLLABORATORS
// ======================================================

type AppointmentGateway interface {
	CreateAppointment(ctx context.Context, ap domain.Appointment) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, ap domain.Appointment) (domain.Appointment, error)
}

// ======================================================
// USE CASE
// ======================================================

// SaveAppointment persists scheduled, in-progress and cancelled
// appointments. Completion goes through CompleteAppointment.
type SaveAppointment struct {
	gw     AppointmentGateway
	logger *zap.Logger
}

func NewSaveAppointment(
	gw AppointmentGateway,
	logger *zap.Logger,
) *SaveAppointment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaveAppointment{
		gw:     gw,
		logger: logger,
	}
}

func (uc *SaveAppointment) Execute(
	ctx context.Context,
	ap domain.Appointment,
) (domain.Appointment, error) {

	if ap.IsLocked() {
		return ap, domain.ErrLocked
	}
	if ap.Status == domain.StatusCompleted {
		return ap, domain.ErrCompletionRequiresSale
	}
	if _, err := domain.ParseStatus(string(ap.Status)); err != nil {
		return ap, err
	}

	// Local validation; no network call on failure.
	if err := domain.Validate(ap); err != nil {
		return ap, err
	}

	if ap.ID == nil {
		created, err := uc.gw.CreateAppointment(ctx, ap)
		if err != nil {
			return ap, err
		}
		uc.logger.Info("appointment_created", zap.Uint("appointment_id", derefID(created.ID)))
		return created, nil
	}

	updated, err := uc.gw.UpdateAppointment(ctx, ap)
	if err != nil {
		return ap, err
	}
	uc.logger.Info("appointment_updated",
		zap.Uint("appointment_id", *ap.ID),
		zap.String("status", string(updated.Status)),
	)
	return updated, nil
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}
