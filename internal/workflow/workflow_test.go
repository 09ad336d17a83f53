package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/salon-backoffice/internal/config"
	"github.com/BruksfildServices01/salon-backoffice/internal/session"
	ucAppointment "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
)

func TestNew_WithoutRedisKeepsStateInMemory(t *testing.T) {
	cfg := &config.Config{
		BackofficeURL:     "http://127.0.0.1:1/api",
		BackofficeTimeout: time.Second,
		SagaTTL:           time.Hour,
	}

	w := New(cfg, session.Anonymous(), zaptest.NewLogger(t))
	defer w.Close()

	require.NotNil(t, w.Complete)
	require.NotNil(t, w.Save)
	require.NotNil(t, w.Commissions)
	assert.False(t, w.Durable())
}

func TestNew_UnreachableRedisFallsBack(t *testing.T) {
	cfg := &config.Config{
		BackofficeURL: "http://127.0.0.1:1/api",
		RedisAddr:     "127.0.0.1:1",
		SagaTTL:       time.Hour,
	}

	w := New(cfg, session.Anonymous(), zaptest.NewLogger(t))
	defer w.Close()

	assert.False(t, w.Durable())
}

// ======================================================
// RESUME
// ======================================================

type fakeBackend struct {
	stored      string
	statusCalls atomic.Int32
	lastStatus  atomic.Value
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/appointments/7":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          7,
			"client_id":   1,
			"employee_id": 1,
			"title":       "Haircut",
			"start_at":    "2025-03-10T10:00",
			"end_at":      "2025-03-10T11:00",
			"status":      f.stored,
		})
	case r.Method == http.MethodPut && r.URL.Path == "/api/appointments/7/status":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.lastStatus.Store(body["status"])
		f.statusCalls.Add(1)
		_, _ = w.Write([]byte(`{"status":"completed"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found"}`))
	}
}

func newResumeWorkflow(t *testing.T, store ucAppointment.SagaStore, stored string) (*Workflow, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{stored: stored}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 1,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	sess, err := session.FromToken(token)
	require.NoError(t, err)

	cfg := &config.Config{
		BackofficeURL:     srv.URL + "/api",
		BackofficeTimeout: 5 * time.Second,
	}
	w := New(cfg, sess, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = w.Close() })

	w.Complete = ucAppointment.NewCompleteAppointment(w.Client, store, zaptest.NewLogger(t), nil)
	return w, backend
}

func TestResume_NothingPending(t *testing.T) {
	w, backend := newResumeWorkflow(t, ucAppointment.NewMemorySagaStore(), "in_progress")

	_, err := w.Resume(context.Background(), 7)

	require.ErrorIs(t, err, ErrNothingToResume)
	assert.Zero(t, backend.statusCalls.Load())
}

func partialStore(t *testing.T, saleID uint) *ucAppointment.MemorySagaStore {
	t.Helper()
	store := ucAppointment.NewMemorySagaStore()
	apID := uint(7)
	require.NoError(t, store.Put(context.Background(), ucAppointment.SagaState{
		ID:                "saga-1",
		AppointmentID:     &apID,
		IdempotencyKey:    "key-1",
		Sale:              ucAppointment.StepDone,
		AppointmentStatus: ucAppointment.StepFailed,
		SaleID:            &saleID,
	}))
	return store
}

func TestResume_RetriesOnlyStatus(t *testing.T) {
	saleID := uint(31)
	w, backend := newResumeWorkflow(t, partialStore(t, saleID), "in_progress")

	res, err := w.Resume(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, ucAppointment.OutcomeCompleted, res.Outcome)
	assert.Equal(t, int32(1), backend.statusCalls.Load())
	assert.Equal(t, "completed", backend.lastStatus.Load())
	require.NotNil(t, res.Sale.ID)
	assert.Equal(t, saleID, *res.Sale.ID)
	assert.True(t, res.Appointment.IsLocked())
}

func TestResume_StatusAlreadyStoredHealsState(t *testing.T) {
	saleID := uint(31)
	store := partialStore(t, saleID)
	w, backend := newResumeWorkflow(t, store, "completed")

	res, err := w.Resume(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, ucAppointment.OutcomeCompleted, res.Outcome)
	assert.Zero(t, backend.statusCalls.Load())
	require.NotNil(t, res.Sale.ID)
	assert.Equal(t, saleID, *res.Sale.ID)

	st, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, ucAppointment.StepDone, st.AppointmentStatus)
	assert.False(t, st.NeedsStatusRetry())
	assert.True(t, st.Completed())

	_, err = w.Resume(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNothingToResume)

	require.NoError(t, w.Complete.Forget(context.Background(), 7))
	st, err = store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, st)
}
