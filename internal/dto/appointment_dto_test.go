package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

const tz = "America/Sao_Paulo"

func formAppointment() appointment.Appointment {
	clientID := uint(1)
	return appointment.Appointment{
		ClientID: &clientID,
		Title:    "Haircut",
		StartAt:  "2025-03-10T09:00",
	}
}

func TestApplyAppointment_NamesFailingField(t *testing.T) {
	var m models.Appointment
	var ve httperr.ValidationError

	in := formAppointment()
	in.EndAt = "tomorrow"
	require.ErrorAs(t, ApplyAppointment(tz, in, &m), &ve)
	assert.Equal(t, []string{"end_at"}, ve.Fields)

	in = formAppointment()
	in.StartAt = "soon"
	require.ErrorAs(t, ApplyAppointment(tz, in, &m), &ve)
	assert.Equal(t, []string{"start_at"}, ve.Fields)
}

func TestApplyAppointment_SecondsRoundTrip(t *testing.T) {
	var m models.Appointment

	in := formAppointment()
	in.StartAt = "2025-03-10T09:00:00"
	in.EndAt = "2025-03-10 10:15:00"
	require.NoError(t, ApplyAppointment(tz, in, &m))

	out := Appointment(tz, m)
	assert.Equal(t, "2025-03-10T09:00", out.StartAt)
	assert.Equal(t, "2025-03-10T10:15", out.EndAt)
}
