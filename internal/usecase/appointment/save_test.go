package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

type fakeAppointmentGateway struct {
	created []domain.Appointment
	updated []domain.Appointment
}

func (g *fakeAppointmentGateway) CreateAppointment(_ context.Context, ap domain.Appointment) (domain.Appointment, error) {
	ap.ID = uintPtr(uint(len(g.created) + 1))
	g.created = append(g.created, ap)
	return ap.Persisted(), nil
}

func (g *fakeAppointmentGateway) UpdateAppointment(_ context.Context, ap domain.Appointment) (domain.Appointment, error) {
	g.updated = append(g.updated, ap)
	return ap.Persisted(), nil
}

func TestSaveAppointment_CreatesNew(t *testing.T) {
	gw := &fakeAppointmentGateway{}
	uc := NewSaveAppointment(gw, zaptest.NewLogger(t))

	ap := domain.New()
	ap, _ = domain.SetField(ap, domain.FieldTitle, "Color")
	ap, _ = domain.SetField(ap, domain.FieldClientID, "1")
	ap, _ = domain.SetField(ap, domain.FieldStartAt, "2025-03-10T09:00")

	got, err := uc.Execute(context.Background(), ap)

	require.NoError(t, err)
	require.Len(t, gw.created, 1)
	assert.Equal(t, "2025-03-10T10:00", gw.created[0].EndAt)
	assert.Equal(t, domain.StatusScheduled, got.PriorStatus)
}

func TestSaveAppointment_ValidationStaysLocal(t *testing.T) {
	gw := &fakeAppointmentGateway{}
	uc := NewSaveAppointment(gw, nil)

	_, err := uc.Execute(context.Background(), domain.New())

	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Empty(t, gw.created)
	assert.Empty(t, gw.updated)
}

func TestSaveAppointment_RefusesCompletion(t *testing.T) {
	gw := &fakeAppointmentGateway{}
	uc := NewSaveAppointment(gw, nil)

	_, err := uc.Execute(context.Background(), completing())
	assert.ErrorIs(t, err, domain.ErrCompletionRequiresSale)

	locked := completing().Persisted()
	_, err = uc.Execute(context.Background(), locked)
	assert.ErrorIs(t, err, domain.ErrLocked)

	assert.Empty(t, gw.updated)
}

func TestSaveAppointment_UpdatesCancellation(t *testing.T) {
	gw := &fakeAppointmentGateway{}
	uc := NewSaveAppointment(gw, nil)

	ap := completing()
	ap.Status = domain.StatusCancelled

	got, err := uc.Execute(context.Background(), ap)

	require.NoError(t, err)
	require.Len(t, gw.updated, 1)
	assert.Equal(t, domain.StatusCancelled, got.PriorStatus)
}
