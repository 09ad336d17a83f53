package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

// ======================================================
// ERRORS
// ======================================================

var (
	// ErrCaptureCancelled is returned when the user abandons the sale
	// capture. Nothing was written.
	ErrCaptureCancelled = errors.New("sale capture cancelled")

	ErrSagaInFlight       = httperr.ErrBusiness("completion_in_progress")
	ErrNoCompletionIntent = httperr.ErrBusiness("no_completion_intent")

	// ErrCompletionUnresolved keeps a stored sale's state from being
	// forgotten before its appointment is completed.
	ErrCompletionUnresolved = httperr.ErrBusiness("completion_unresolved")
)

// ======================================================
// COLLABORATORS
// ======================================================

type CompletionGateway interface {
	LoadCatalog(ctx context.Context) (sale.Catalog, error)
	CreateSale(ctx context.Context, s sale.Sale, idempotencyKey string) (sale.Sale, error)
	UpdateAppointmentStatus(ctx context.Context, id uint, status domain.Status) error
}

type CaptureRequest struct {
	Appointment domain.Appointment
	Draft       sale.Sale
	Catalog     sale.Catalog
}

// SaleCapture lets the user fill in line items and payments. It returns
// ErrCaptureCancelled when the user gives up.
type SaleCapture interface {
	Capture(ctx context.Context, req CaptureRequest) (sale.Sale, error)
}

type CaptureFunc func(ctx context.Context, req CaptureRequest) (sale.Sale, error)

func (f CaptureFunc) Capture(ctx context.Context, req CaptureRequest) (sale.Sale, error) {
	return f(ctx, req)
}

// ======================================================
// RESULT
// ======================================================

type Outcome string

const (
	// OutcomeCompleted: sale stored and appointment stored as completed.
	OutcomeCompleted Outcome = "completed"
	// OutcomeSaleRecorded: free-standing sale, no appointment to update.
	OutcomeSaleRecorded Outcome = "sale_recorded"
	// OutcomePartial: sale stored, appointment status update failed.
	OutcomePartial Outcome = "partial"
	// OutcomeSaleFailed: the sale write failed; nothing else was tried.
	OutcomeSaleFailed Outcome = "sale_failed"
)

type Result struct {
	Outcome     Outcome
	State       SagaState
	Sale        sale.Sale
	Appointment domain.Appointment

	// StatusErr is the step 2 failure behind a partial outcome.
	StatusErr error
}

func (r *Result) Partial() bool {
	return r != nil && r.Outcome == OutcomePartial
}

// ======================================================
// USE CASE
// ======================================================

// CompleteAppointment stores a sale and then marks its appointment
// completed. There is no transaction across the two writes: a failed
// status update leaves the sale in place and is reported as a partial
// outcome, which a later Execute retries without a new sale.
type CompleteAppointment struct {
	gw     CompletionGateway
	store  SagaStore
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	inFlight map[uint]struct{}
}

func NewCompleteAppointment(
	gw CompletionGateway,
	store SagaStore,
	logger *zap.Logger,
	now func() time.Time,
) *CompleteAppointment {
	if store == nil {
		store = NewMemorySagaStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &CompleteAppointment{
		gw:       gw,
		store:    store,
		logger:   logger,
		now:      now,
		inFlight: map[uint]struct{}{},
	}
}

// Pending returns the stored saga state for an appointment, if any.
func (uc *CompleteAppointment) Pending(ctx context.Context, appointmentID uint) (*SagaState, error) {
	return uc.store.Get(ctx, appointmentID)
}

// Forget drops the stored saga state of an appointment. A state whose
// sale is stored but whose status update is still owed is kept.
func (uc *CompleteAppointment) Forget(ctx context.Context, appointmentID uint) error {
	release, err := uc.acquire(appointmentID)
	if err != nil {
		return err
	}
	defer release()

	st, err := uc.store.Get(ctx, appointmentID)
	if err != nil {
		return err
	}
	if st != nil && st.NeedsStatusRetry() {
		return ErrCompletionUnresolved
	}
	return uc.store.Delete(ctx, appointmentID)
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs the completion for an appointment carrying a completion
// intent. Errors mean nothing beyond a failed sale attempt happened; a
// failed status update after a stored sale is reported through
// Result.Partial with a nil error.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	ap domain.Appointment,
	capture SaleCapture,
) (*Result, error) {

	if ap.IsLocked() {
		return uc.settleLocked(ctx, ap)
	}
	if !ap.CompletionIntent() {
		return nil, ErrNoCompletionIntent
	}

	if ap.ID != nil {
		release, err := uc.acquire(*ap.ID)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	// --------------------------------------------------
	// 0) Earlier run stored the sale but not the status
	// --------------------------------------------------
	var prior *SagaState
	if ap.ID != nil {
		st, err := uc.store.Get(ctx, *ap.ID)
		if err != nil {
			return nil, err
		}
		prior = st
	}
	if prior != nil && prior.NeedsStatusRetry() {
		uc.logger.Info("saga_resumed",
			zap.String("saga_id", prior.ID),
			zap.Uint("appointment_id", *ap.ID),
		)
		return uc.updateStatus(ctx, ap, *prior, sale.Sale{ID: prior.SaleID}), nil
	}

	// --------------------------------------------------
	// 1) Sale capture
	// --------------------------------------------------
	catalog, err := uc.gw.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	draft := sale.NewDraft(ap.ClientID, ap.ID, sale.SoldAtFromEnd(ap.EndAt, uc.now()))
	captured, err := capture.Capture(ctx, CaptureRequest{
		Appointment: ap,
		Draft:       draft,
		Catalog:     catalog,
	})
	if err != nil {
		if errors.Is(err, ErrCaptureCancelled) {
			uc.logger.Info("sale_capture_cancelled", appointmentField(ap.ID))
		}
		return nil, err
	}
	captured.AppointmentID = ap.ID

	return uc.submit(ctx, ap, captured, prior)
}

// RecordSale stores a sale that has no source appointment. Step 2 is
// skipped.
func (uc *CompleteAppointment) RecordSale(ctx context.Context, s sale.Sale) (*Result, error) {
	s.AppointmentID = nil
	return uc.submit(ctx, domain.Appointment{}, s, nil)
}

func (uc *CompleteAppointment) submit(
	ctx context.Context,
	ap domain.Appointment,
	s sale.Sale,
	prior *SagaState,
) (*Result, error) {

	if err := sale.Validate(s); err != nil {
		return nil, err
	}

	state := SagaState{
		ID:                uuid.NewString(),
		AppointmentID:     s.AppointmentID,
		IdempotencyKey:    uuid.NewString(),
		Sale:              StepPending,
		AppointmentStatus: StepPending,
		UpdatedAt:         uc.now(),
	}
	if prior != nil && (prior.Sale == StepFailed || prior.Sale == StepPending) {
		// The earlier attempt may still have landed; reuse its key.
		state.ID = prior.ID
		state.IdempotencyKey = prior.IdempotencyKey
	}
	if s.AppointmentID == nil {
		state.AppointmentStatus = StepSkipped
	}
	if err := uc.store.Put(ctx, state); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1b) Sale write
	// --------------------------------------------------
	created, err := uc.gw.CreateSale(ctx, s, state.IdempotencyKey)
	if err != nil {
		state.Sale = StepFailed
		state.LastError = err.Error()
		state.UpdatedAt = uc.now()
		uc.putQuietly(ctx, state)

		uc.logger.Warn("sale_failed",
			zap.String("saga_id", state.ID),
			appointmentField(s.AppointmentID),
			zap.Error(err),
		)
		return &Result{
			Outcome:     OutcomeSaleFailed,
			State:       state,
			Appointment: discardIntent(ap),
		}, err
	}

	state.Sale = StepDone
	state.SaleID = created.ID
	state.LastError = ""
	state.UpdatedAt = uc.now()

	uc.logger.Info("sale_submitted",
		zap.String("saga_id", state.ID),
		appointmentField(s.AppointmentID),
		saleField(created.ID),
	)

	if s.AppointmentID == nil {
		return &Result{
			Outcome: OutcomeSaleRecorded,
			State:   state,
			Sale:    created,
		}, nil
	}
	uc.putQuietly(ctx, state)

	// --------------------------------------------------
	// 2) Appointment status
	// --------------------------------------------------
	return uc.updateStatus(ctx, ap, state, created), nil
}

func (uc *CompleteAppointment) updateStatus(
	ctx context.Context,
	ap domain.Appointment,
	state SagaState,
	created sale.Sale,
) *Result {

	err := uc.gw.UpdateAppointmentStatus(ctx, *state.AppointmentID, domain.StatusCompleted)
	state.UpdatedAt = uc.now()

	// The backend already holds it as completed, e.g. an earlier update
	// landed after the client gave up on it.
	if httperr.TransportCode(err) == domain.ErrLocked.Error() {
		return uc.confirmStored(ctx, ap, state, created)
	}

	if err != nil {
		state.AppointmentStatus = StepFailed
		state.LastError = err.Error()
		uc.putQuietly(ctx, state)

		uc.logger.Error("status_failed",
			zap.String("saga_id", state.ID),
			appointmentField(state.AppointmentID),
			saleField(state.SaleID),
			zap.Error(err),
		)
		return &Result{
			Outcome:     OutcomePartial,
			State:       state,
			Sale:        created,
			Appointment: discardIntent(ap),
			StatusErr:   err,
		}
	}

	state.AppointmentStatus = StepDone
	state.LastError = ""
	uc.putQuietly(ctx, state)

	uc.logger.Info("status_updated",
		zap.String("saga_id", state.ID),
		appointmentField(state.AppointmentID),
		saleField(state.SaleID),
	)

	ap.Status = domain.StatusCompleted
	return &Result{
		Outcome:     OutcomeCompleted,
		State:       state,
		Sale:        created,
		Appointment: ap.Persisted(),
	}
}

// settleLocked accepts an appointment already stored as completed only
// as the missing half of a completion whose sale is stored.
func (uc *CompleteAppointment) settleLocked(ctx context.Context, ap domain.Appointment) (*Result, error) {
	if ap.ID == nil {
		return nil, domain.ErrLocked
	}

	release, err := uc.acquire(*ap.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	prior, err := uc.store.Get(ctx, *ap.ID)
	if err != nil {
		return nil, err
	}
	if prior == nil || !prior.NeedsStatusRetry() {
		return nil, domain.ErrLocked
	}
	return uc.confirmStored(ctx, ap, *prior, sale.Sale{ID: prior.SaleID}), nil
}

func (uc *CompleteAppointment) confirmStored(
	ctx context.Context,
	ap domain.Appointment,
	state SagaState,
	created sale.Sale,
) *Result {

	state.AppointmentStatus = StepDone
	state.LastError = ""
	state.UpdatedAt = uc.now()
	uc.putQuietly(ctx, state)

	uc.logger.Info("status_confirmed",
		zap.String("saga_id", state.ID),
		appointmentField(state.AppointmentID),
		saleField(state.SaleID),
	)

	ap.Status = domain.StatusCompleted
	return &Result{
		Outcome:     OutcomeCompleted,
		State:       state,
		Sale:        created,
		Appointment: ap.Persisted(),
	}
}

// ======================================================
// HELPERS
// ======================================================

func (uc *CompleteAppointment) acquire(appointmentID uint) (func(), error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, busy := uc.inFlight[appointmentID]; busy {
		return nil, ErrSagaInFlight
	}
	uc.inFlight[appointmentID] = struct{}{}

	return func() {
		uc.mu.Lock()
		delete(uc.inFlight, appointmentID)
		uc.mu.Unlock()
	}, nil
}

// putQuietly records progress; a store failure must not change the
// outcome of writes that already happened.
func (uc *CompleteAppointment) putQuietly(ctx context.Context, state SagaState) {
	if err := uc.store.Put(ctx, state); err != nil {
		uc.logger.Warn("saga state not saved", zap.String("saga_id", state.ID), zap.Error(err))
	}
}

func discardIntent(ap domain.Appointment) domain.Appointment {
	ed, err := domain.Edit(ap)
	if err != nil {
		return ap
	}
	ed.DiscardCompletion()
	return ed.Appointment()
}

func appointmentField(id *uint) zap.Field {
	if id == nil {
		return zap.Skip()
	}
	return zap.Uint("appointment_id", *id)
}

func saleField(id *uint) zap.Field {
	if id == nil {
		return zap.Skip()
	}
	return zap.Uint("sale_id", *id)
}
