package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/dto"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

// StoreAppointment creates and updates appointments on the server. It
// never completes one; that goes through ChangeAppointmentStatus.
type StoreAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	timezone string
}

func NewStoreAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *StoreAppointment {
	return &StoreAppointment{
		repo:     repo,
		audit:    audit,
		timezone: tz,
	}
}

// ======================================================
// CREATE
// ======================================================

func (uc *StoreAppointment) Create(
	ctx context.Context,
	userID *uint,
	in domain.Appointment,
) (*models.Appointment, error) {

	status, err := uc.checkIncoming(in)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{Status: string(status)}
	if err := dto.ApplyAppointment(uc.timezone, in, ap); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// ======================================================
// UPDATE
// ======================================================

func (uc *StoreAppointment) Update(
	ctx context.Context,
	userID *uint,
	appointmentID uint,
	in domain.Appointment,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	// The stored status decides the lock, not the one in the body.
	if err := domain.AssertEditable(ap); err != nil {
		return nil, err
	}

	status, err := uc.checkIncoming(in)
	if err != nil {
		return nil, err
	}
	if err := domain.CanTransition(domain.Status(ap.Status), status); err != nil {
		return nil, err
	}

	if err := dto.ApplyAppointment(uc.timezone, in, ap); err != nil {
		return nil, err
	}
	if status != domain.Status(ap.Status) {
		if err := domain.ApplyStatus(ap, status, timezone.NowIn(uc.timezone)); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (uc *StoreAppointment) Get(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, appointmentID)
}

func (uc *StoreAppointment) checkIncoming(in domain.Appointment) (domain.Status, error) {
	status := in.Status
	if status == "" {
		status = domain.InitialStatus()
	}
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return "", err
	}
	if status == domain.StatusCompleted {
		return "", domain.ErrCompletionRequiresSale
	}
	if err := domain.Validate(in); err != nil {
		return "", err
	}
	return status, nil
}
