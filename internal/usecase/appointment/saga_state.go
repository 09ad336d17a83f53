package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ======================================================
// SAGA STATE
// ======================================================

type StepStatus string

const (
	StepPending StepStatus = "pending"
	StepDone    StepStatus = "done"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// SagaState records how far a completion got, so a caller can inspect
// it and resume a partial failure without creating a second sale.
type SagaState struct {
	ID                string     `json:"id"`
	AppointmentID     *uint      `json:"appointment_id"`
	IdempotencyKey    string     `json:"idempotency_key"`
	Sale              StepStatus `json:"sale"`
	AppointmentStatus StepStatus `json:"appointment_status"`
	SaleID            *uint      `json:"sale_id"`
	LastError         string     `json:"last_error,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NeedsStatusRetry reports a stored sale whose appointment was never
// marked completed.
func (s SagaState) NeedsStatusRetry() bool {
	return s.Sale == StepDone &&
		(s.AppointmentStatus == StepFailed || s.AppointmentStatus == StepPending)
}

func (s SagaState) Completed() bool {
	return s.Sale == StepDone &&
		(s.AppointmentStatus == StepDone || s.AppointmentStatus == StepSkipped)
}

// ======================================================
// STORE
// ======================================================

// SagaStore keeps saga state per appointment. Get returns nil, nil when
// nothing is stored.
type SagaStore interface {
	Get(ctx context.Context, appointmentID uint) (*SagaState, error)
	Put(ctx context.Context, state SagaState) error
	Delete(ctx context.Context, appointmentID uint) error
}

// --------------------------------------------------
// Memory
// --------------------------------------------------

type MemorySagaStore struct {
	mu     sync.Mutex
	states map[uint]SagaState
}

func NewMemorySagaStore() *MemorySagaStore {
	return &MemorySagaStore{states: map[uint]SagaState{}}
}

func (m *MemorySagaStore) Get(_ context.Context, appointmentID uint) (*SagaState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.states[appointmentID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (m *MemorySagaStore) Put(_ context.Context, state SagaState) error {
	if state.AppointmentID == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[*state.AppointmentID] = state
	return nil
}

func (m *MemorySagaStore) Delete(_ context.Context, appointmentID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, appointmentID)
	return nil
}

// --------------------------------------------------
// Redis
// --------------------------------------------------

type RedisSagaStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisSagaStore(rdb *redis.Client, ttl time.Duration) *RedisSagaStore {
	return &RedisSagaStore{rdb: rdb, ttl: ttl, prefix: "saga:appointment"}
}

func (r *RedisSagaStore) key(appointmentID uint) string {
	return fmt.Sprintf("%s:%d", r.prefix, appointmentID)
}

func (r *RedisSagaStore) Get(ctx context.Context, appointmentID uint) (*SagaState, error) {
	raw, err := r.rdb.Get(ctx, r.key(appointmentID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("saga store get: %w", err)
	}

	var st SagaState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("saga store decode: %w", err)
	}
	return &st, nil
}

func (r *RedisSagaStore) Put(ctx context.Context, state SagaState) error {
	if state.AppointmentID == nil {
		return nil
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("saga store encode: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(*state.AppointmentID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("saga store put: %w", err)
	}
	return nil
}

func (r *RedisSagaStore) Delete(ctx context.Context, appointmentID uint) error {
	if err := r.rdb.Del(ctx, r.key(appointmentID)).Err(); err != nil {
		return fmt.Errorf("saga store delete: %w", err)
	}
	return nil
}

var (
	_ SagaStore = (*MemorySagaStore)(nil)
	_ SagaStore = (*RedisSagaStore)(nil)
)
