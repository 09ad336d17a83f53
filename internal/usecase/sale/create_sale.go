package sale

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/dto"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// CreateSale records a reconciled sale. A repeated idempotency key returns
// the sale stored the first time.
type CreateSale struct {
	sales        domain.Repository
	appointments apdomain.Repository
	audit        *audit.Dispatcher
	timezone     string
}

func NewCreateSale(
	sales domain.Repository,
	appointments apdomain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CreateSale {
	return &CreateSale{
		sales:        sales,
		appointments: appointments,
		audit:        audit,
		timezone:     tz,
	}
}

func (uc *CreateSale) Execute(
	ctx context.Context,
	userID *uint,
	in domain.Sale,
	idempotencyKey string,
) (*models.Sale, bool, error) {

	// --------------------------------------------------
	// Reconciliation
	// --------------------------------------------------
	if err := domain.Validate(in); err != nil {
		return nil, false, err
	}

	// --------------------------------------------------
	// Linked appointment must exist
	// --------------------------------------------------
	if in.AppointmentID != nil {
		if _, err := uc.appointments.GetAppointment(ctx, *in.AppointmentID); err != nil {
			return nil, false, err
		}
	}

	m, err := dto.SaleModel(uc.timezone, in)
	if err != nil {
		return nil, false, httperr.ErrValidation("validation_failed", "sold_at")
	}
	if idempotencyKey != "" {
		m.IdempotencyKey = &idempotencyKey
	}

	created, err := uc.sales.CreateSale(ctx, &m)
	if err != nil {
		return nil, false, err
	}

	if created {
		uc.audit.Dispatch(audit.Event{
			UserID:   userID,
			Action:   "sale_created",
			Entity:   "sale",
			EntityID: &m.ID,
			Metadata: map[string]any{
				"appointment_id": m.AppointmentID,
			},
		})
	}

	return &m, created, nil
}
