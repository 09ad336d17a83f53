package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/timezone"
)

// ChangeAppointmentStatus is the server side of the status endpoint.
// Completion is only accepted once a sale references the appointment.
type ChangeAppointmentStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	timezone string
}

func NewChangeAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{
		repo:     repo,
		audit:    audit,
		timezone: tz,
	}
}

func (uc *ChangeAppointmentStatus) Execute(
	ctx context.Context,
	userID *uint,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.AssertEditable(ap); err != nil {
		return nil, err
	}

	if to == domain.StatusCompleted {
		hasSale, err := uc.repo.HasSaleForAppointment(ctx, ap.ID)
		if err != nil {
			return nil, err
		}
		if !hasSale {
			return nil, domain.ErrSaleRequired
		}
	}

	from := ap.Status
	now := timezone.NowIn(uc.timezone)
	if err := domain.ApplyStatus(ap, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	action := "appointment_status_changed"
	if to == domain.StatusCompleted {
		action = "appointment_completed"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   ap.Status,
		},
	})

	return ap, nil
}
