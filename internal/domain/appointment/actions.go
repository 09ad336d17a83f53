package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

// ErrSaleRequired is the server's refusal to complete an appointment that
// has no recorded sale.
var ErrSaleRequired = httperr.ErrBusiness("sale_required")

// ===============================
// Domain Actions (stored appointments)
// ===============================

// ApplyStatus moves a stored appointment to a new status and stamps the
// matching timestamp.
func ApplyStatus(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	default:
		ap.CancelledAt = nil
	}
	return nil
}

// AssertEditable rejects changes to a stored appointment that is already
// completed.
func AssertEditable(ap *models.Appointment) error {
	if Status(ap.Status) == StatusCompleted {
		return ErrLocked
	}
	return nil
}
