package dto

import (
	"strings"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/timezone"
)

// Appointment renders a stored appointment with salon-local times.
func Appointment(tz string, m models.Appointment) appointment.Appointment {
	id := m.ID
	clientID := m.ClientID

	return appointment.Appointment{
		ID:          &id,
		ClientID:    &clientID,
		EmployeeID:  m.EmployeeID,
		Title:       m.Title,
		Description: m.Description,
		StartAt:     timezone.FormatLocal(tz, m.StartAt),
		EndAt:       timezone.FormatLocal(tz, m.EndAt),
		Status:      appointment.Status(m.Status),
	}
}

// ApplyAppointment copies editable fields onto a stored appointment. The
// caller validates ap first. A datetime that does not parse is reported
// as a ValidationError naming its field.
func ApplyAppointment(tz string, ap appointment.Appointment, m *models.Appointment) error {
	start, err := timezone.ParseLocal(tz, ap.StartAt)
	if err != nil {
		return httperr.ErrValidation("validation_failed", string(appointment.FieldStartAt))
	}

	end := start.Add(appointment.DefaultDuration)
	if strings.TrimSpace(ap.EndAt) != "" {
		if end, err = timezone.ParseLocal(tz, ap.EndAt); err != nil {
			return httperr.ErrValidation("validation_failed", string(appointment.FieldEndAt))
		}
	}

	m.ClientID = *ap.ClientID
	m.EmployeeID = ap.EmployeeID
	m.Title = ap.Title
	m.Description = ap.Description
	m.StartAt = start
	m.EndAt = end
	return nil
}
