package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

// ======================================================
// FAKES
// ======================================================

type fakeGateway struct {
	mu sync.Mutex

	calls []string
	keys  []string
	sales []sale.Sale

	catalogErr error
	saleErr    error
	statusErr  error

	statusUpdates []domain.Status
}

func (g *fakeGateway) LoadCatalog(context.Context) (sale.Catalog, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "catalog")
	if g.catalogErr != nil {
		return sale.Catalog{}, g.catalogErr
	}
	return sale.Catalog{
		Articles: []sale.Article{{ID: 1, Name: "Haircut", Price: 45}},
	}, nil
}

func (g *fakeGateway) CreateSale(_ context.Context, s sale.Sale, key string) (sale.Sale, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "sale")
	g.keys = append(g.keys, key)
	if g.saleErr != nil {
		return sale.Sale{}, g.saleErr
	}
	id := uint(len(g.sales) + 100)
	s.ID = &id
	g.sales = append(g.sales, s)
	return s, nil
}

func (g *fakeGateway) UpdateAppointmentStatus(_ context.Context, _ uint, st domain.Status) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "status")
	if g.statusErr != nil {
		return g.statusErr
	}
	g.statusUpdates = append(g.statusUpdates, st)
	return nil
}

func (g *fakeGateway) count(call string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == call {
			n++
		}
	}
	return n
}

func uintPtr(v uint) *uint { return &v }

func fixedNow() time.Time {
	return time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
}

// completing returns a stored in-progress appointment with a completion
// intent.
func completing() domain.Appointment {
	ap := domain.Appointment{
		ID:       uintPtr(7),
		ClientID: uintPtr(1),
		Title:    "Haircut",
		StartAt:  "2025-03-10T09:00",
		EndAt:    "2025-03-10T10:00",
		Status:   domain.StatusInProgress,
	}.Persisted()
	ap.Status = domain.StatusCompleted
	return ap
}

// fillSale is a capture that books one haircut paid in full.
var fillSale = CaptureFunc(func(_ context.Context, req CaptureRequest) (sale.Sale, error) {
	s := req.Draft
	i := s.AddLineItem()
	a, _ := req.Catalog.Article(1)
	_ = s.SelectArticle(i, a)
	_ = s.SetLineEmployee(i, 2)
	s.AddPayment(1, 45)
	return s, nil
})

func newUC(t *testing.T, gw *fakeGateway) (*CompleteAppointment, *MemorySagaStore) {
	store := NewMemorySagaStore()
	return NewCompleteAppointment(gw, store, zaptest.NewLogger(t), fixedNow), store
}

// ======================================================
// TESTS
// ======================================================

func TestComplete_HappyPath(t *testing.T) {
	gw := &fakeGateway{}
	uc, store := newUC(t, gw)

	res, err := uc.Execute(context.Background(), completing(), fillSale)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, []string{"catalog", "sale", "status"}, gw.calls)
	assert.Equal(t, []domain.Status{domain.StatusCompleted}, gw.statusUpdates)

	assert.True(t, res.Appointment.IsLocked())
	require.NotNil(t, res.Sale.ID)
	assert.Equal(t, uint(7), *res.Sale.AppointmentID)
	assert.Equal(t, "2025-03-10T10:00", gw.sales[0].SoldAt)
	assert.NotEmpty(t, gw.keys[0])

	st, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.True(t, st.Completed())
}

func TestComplete_CaptureCancelledMakesNoWrites(t *testing.T) {
	gw := &fakeGateway{}
	uc, store := newUC(t, gw)

	cancel := CaptureFunc(func(context.Context, CaptureRequest) (sale.Sale, error) {
		return sale.Sale{}, ErrCaptureCancelled
	})

	res, err := uc.Execute(context.Background(), completing(), cancel)

	assert.ErrorIs(t, err, ErrCaptureCancelled)
	assert.Nil(t, res)
	assert.Equal(t, 0, gw.count("sale"))
	assert.Equal(t, 0, gw.count("status"))

	st, _ := store.Get(context.Background(), 7)
	assert.Nil(t, st)
}

func TestComplete_UnbalancedSaleNeverLeavesTheClient(t *testing.T) {
	gw := &fakeGateway{}
	uc, _ := newUC(t, gw)

	short := CaptureFunc(func(ctx context.Context, req CaptureRequest) (sale.Sale, error) {
		s, _ := fillSale(ctx, req)
		s.Payments[0].Amount = 44.99
		return s, nil
	})

	res, err := uc.Execute(context.Background(), completing(), short)

	require.Error(t, err)
	assert.True(t, httperr.IsValidation(err))
	assert.Nil(t, res)
	assert.Equal(t, []string{"catalog"}, gw.calls)
}

func TestComplete_SaleFailureSkipsStatus(t *testing.T) {
	gw := &fakeGateway{saleErr: &httperr.TransportError{Op: "create sale", StatusCode: 500}}
	uc, store := newUC(t, gw)

	res, err := uc.Execute(context.Background(), completing(), fillSale)

	require.Error(t, err)
	assert.True(t, httperr.IsTransport(err))
	require.NotNil(t, res)
	assert.Equal(t, OutcomeSaleFailed, res.Outcome)
	assert.Equal(t, 0, gw.count("status"))
	assert.Equal(t, domain.StatusInProgress, res.Appointment.Status, "intent discarded")

	st, _ := store.Get(context.Background(), 7)
	require.NotNil(t, st)
	assert.Equal(t, StepFailed, st.Sale)
	assert.Equal(t, StepPending, st.AppointmentStatus)
}

func TestComplete_RetryAfterSaleFailureReusesKey(t *testing.T) {
	gw := &fakeGateway{saleErr: errors.New("connection reset")}
	uc, _ := newUC(t, gw)

	_, err := uc.Execute(context.Background(), completing(), fillSale)
	require.Error(t, err)

	gw.saleErr = nil
	res, err := uc.Execute(context.Background(), completing(), fillSale)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, res.Outcome)

	require.Len(t, gw.keys, 2)
	assert.Equal(t, gw.keys[0], gw.keys[1])
}

func TestComplete_StatusFailureIsPartial(t *testing.T) {
	statusErr := &httperr.TransportError{Op: "update appointment status", StatusCode: 500}
	gw := &fakeGateway{statusErr: statusErr}
	uc, store := newUC(t, gw)

	res, err := uc.Execute(context.Background(), completing(), fillSale)

	require.NoError(t, err, "partial completion is a result, not an error")
	require.NotNil(t, res)
	assert.True(t, res.Partial())
	assert.ErrorIs(t, res.StatusErr, statusErr)
	require.NotNil(t, res.Sale.ID)
	assert.Len(t, gw.sales, 1)
	assert.Equal(t, domain.StatusInProgress, res.Appointment.Status)
	assert.False(t, res.Appointment.IsLocked())

	st, _ := uc.Pending(context.Background(), 7)
	require.NotNil(t, st)
	assert.True(t, st.NeedsStatusRetry())
	assert.Equal(t, res.Sale.ID, st.SaleID)

	stored, _ := store.Get(context.Background(), 7)
	assert.Equal(t, StepFailed, stored.AppointmentStatus)
}

func TestComplete_ResumeRetriesOnlyStatus(t *testing.T) {
	gw := &fakeGateway{statusErr: errors.New("timeout")}
	uc, _ := newUC(t, gw)

	first, err := uc.Execute(context.Background(), completing(), fillSale)
	require.NoError(t, err)
	require.True(t, first.Partial())

	gw.statusErr = nil
	captureCalled := false
	noCapture := CaptureFunc(func(context.Context, CaptureRequest) (sale.Sale, error) {
		captureCalled = true
		return sale.Sale{}, ErrCaptureCancelled
	})

	res, err := uc.Execute(context.Background(), completing(), noCapture)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.False(t, captureCalled)
	assert.Equal(t, 1, gw.count("sale"), "no second sale")
	assert.Equal(t, 2, gw.count("status"))
	assert.Equal(t, 1, gw.count("catalog"))
	assert.Equal(t, first.Sale.ID, res.State.SaleID)
}

func TestComplete_Preconditions(t *testing.T) {
	gw := &fakeGateway{}
	uc, _ := newUC(t, gw)

	locked := completing()
	locked.PriorStatus = domain.StatusCompleted
	_, err := uc.Execute(context.Background(), locked, fillSale)
	assert.ErrorIs(t, err, domain.ErrLocked)

	noIntent := completing()
	noIntent.Status = domain.StatusInProgress
	_, err = uc.Execute(context.Background(), noIntent, fillSale)
	assert.ErrorIs(t, err, ErrNoCompletionIntent)

	assert.Empty(t, gw.calls)
}

func TestComplete_CatalogFailureStopsBeforeCapture(t *testing.T) {
	gw := &fakeGateway{catalogErr: errors.New("offline")}
	uc, _ := newUC(t, gw)

	_, err := uc.Execute(context.Background(), completing(), fillSale)

	require.Error(t, err)
	assert.Equal(t, []string{"catalog"}, gw.calls)
}

func TestComplete_DoubleSubmitIsRejected(t *testing.T) {
	gw := &fakeGateway{}
	uc, _ := newUC(t, gw)

	entered := make(chan struct{})
	release := make(chan struct{})
	slow := CaptureFunc(func(ctx context.Context, req CaptureRequest) (sale.Sale, error) {
		close(entered)
		<-release
		return fillSale(ctx, req)
	})

	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background(), completing(), slow)
		done <- err
	}()

	<-entered
	_, err := uc.Execute(context.Background(), completing(), fillSale)
	assert.ErrorIs(t, err, ErrSagaInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gw.count("sale"))
}

func TestRecordSale_SkipsStatusStep(t *testing.T) {
	gw := &fakeGateway{}
	uc, _ := newUC(t, gw)

	s := sale.NewDraft(uintPtr(1), uintPtr(99), "2025-03-10T12:00")
	i := s.AddLineItem()
	_ = s.SelectArticle(i, sale.Article{ID: 1, Price: 20})
	_ = s.SetLineEmployee(i, 1)
	s.AddPayment(1, 20)

	res, err := uc.RecordSale(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, OutcomeSaleRecorded, res.Outcome)
	assert.Equal(t, StepSkipped, res.State.AppointmentStatus)
	assert.Nil(t, gw.sales[0].AppointmentID)
	assert.Equal(t, 0, gw.count("status"))
}

func TestComplete_LockedReplyToStatusCountsAsDone(t *testing.T) {
	gw := &fakeGateway{statusErr: &httperr.TransportError{
		Op:         "update appointment status",
		StatusCode: 409,
		Code:       "appointment_locked",
	}}
	uc, store := newUC(t, gw)

	res, err := uc.Execute(context.Background(), completing(), fillSale)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.False(t, res.Partial())
	assert.Equal(t, StepDone, res.State.AppointmentStatus)

	st, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, st.Completed())
}

func TestComplete_LockedAppointmentSettlesStoredSale(t *testing.T) {
	gw := &fakeGateway{statusErr: errors.New("timeout")}
	uc, store := newUC(t, gw)

	first, err := uc.Execute(context.Background(), completing(), fillSale)
	require.NoError(t, err)
	require.True(t, first.Partial())

	// The update landed after all: the backend now reports it completed.
	stored := completing()
	stored.PriorStatus = domain.StatusCompleted

	res, err := uc.Execute(context.Background(), stored, fillSale)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, first.State.SaleID, res.State.SaleID)
	assert.Equal(t, 1, gw.count("sale"))
	assert.Equal(t, 1, gw.count("status"))

	st, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, st.NeedsStatusRetry())
}

func TestForget_KeepsUnresolvedState(t *testing.T) {
	gw := &fakeGateway{statusErr: errors.New("timeout")}
	uc, store := newUC(t, gw)

	_, err := uc.Execute(context.Background(), completing(), fillSale)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Forget(context.Background(), 7), ErrCompletionUnresolved)
	st, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, st)

	gw.statusErr = nil
	_, err = uc.Execute(context.Background(), completing(), fillSale)
	require.NoError(t, err)

	require.NoError(t, uc.Forget(context.Background(), 7))
	st, err = store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, st)
}
