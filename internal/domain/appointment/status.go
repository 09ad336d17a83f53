package appointment

import (
	"errors"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrInvalidStatus     = httperr.ErrBusiness("invalid_status")
	ErrInvalidTransition = httperr.ErrBusiness("invalid_transition")

	// ErrLocked is returned for any mutation of an appointment whose
	// persisted status is completed.
	ErrLocked = httperr.ErrBusiness("appointment_locked")

	// ErrTerminal rejects field edits while the editor shows a cancelled
	// or completed appointment.
	ErrTerminal = httperr.ErrBusiness("appointment_terminal")

	// ErrCompletionRequiresSale is returned when completion is attempted
	// outside the sale workflow.
	ErrCompletionRequiresSale = httperr.ErrBusiness("completion_requires_sale")
)

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled, StatusCompleted},
	StatusInProgress: {StatusScheduled, StatusCancelled, StatusCompleted},
	StatusCancelled:  {StatusScheduled, StatusInProgress},
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// ===============================
// Validations
// ===============================

// CanTransition checks a single status move. Staying put is always allowed
// except on a completed appointment.
func CanTransition(from, to Status) error {
	if from == StatusCompleted {
		return ErrLocked
	}
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// IsTerminal reports whether the editor stops accepting field edits.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func InitialStatus() Status {
	return StatusScheduled
}

func IsLocked(err error) bool {
	return errors.Is(err, ErrLocked)
}
