package appointment

import (
	"strconv"
	"strings"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

// Appointment is the editable form of an appointment. Times are local
// datetime text ("2006-01-02T15:04" or "2006-01-02 15:04").
type Appointment struct {
	ID          *uint  `json:"id,omitempty"`
	ClientID    *uint  `json:"client_id"`
	EmployeeID  *uint  `json:"employee_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
	Status      Status `json:"status"`

	// PriorStatus is the last status known to be stored by the backend.
	PriorStatus Status `json:"-"`
}

type Field string

const (
	FieldClientID    Field = "client_id"
	FieldEmployeeID  Field = "employee_id"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldStartAt     Field = "start_at"
	FieldEndAt       Field = "end_at"
	FieldStatus      Field = "status"
)

var ErrUnknownField = httperr.ErrBusiness("unknown_field")

func New() Appointment {
	return Appointment{Status: InitialStatus()}
}

// Persisted marks the current status as the stored one. Call it on every
// appointment decoded from the backend.
func (a Appointment) Persisted() Appointment {
	a.PriorStatus = a.Status
	return a
}

// IsLocked reports whether the stored status forbids any mutation.
func (a Appointment) IsLocked() bool {
	return a.PriorStatus == StatusCompleted
}

// CompletionIntent reports an in-memory move to completed that has not
// been stored yet.
func (a Appointment) CompletionIntent() bool {
	return a.Status == StatusCompleted && a.PriorStatus != StatusCompleted
}

// ===============================
// Editor
// ===============================

// Editor is the only way to mutate an Appointment. It cannot be obtained
// for a locked appointment.
type Editor struct {
	ap Appointment
}

func Edit(ap Appointment) (*Editor, error) {
	if ap.IsLocked() {
		return nil, ErrLocked
	}
	return &Editor{ap: ap}, nil
}

func (e *Editor) Appointment() Appointment {
	return e.ap
}

func (e *Editor) editable() error {
	if e.ap.Status.IsTerminal() {
		return ErrTerminal
	}
	return nil
}

func (e *Editor) SetTitle(title string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.ap.Title = title
	return nil
}

func (e *Editor) SetDescription(desc string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.ap.Description = desc
	return nil
}

func (e *Editor) SetClient(id *uint) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.ap.ClientID = id
	return nil
}

func (e *Editor) SetEmployee(id *uint) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.ap.EmployeeID = id
	return nil
}

// SetStart updates the start time and re-derives the end time. An
// underivable start leaves the current end time untouched.
func (e *Editor) SetStart(start string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.ap.StartAt = start
	if end := DeriveEnd(start); end != "" {
		e.ap.EndAt = end
	}
	return nil
}

func (e *Editor) SetEnd(end string) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.ap.EndAt = end
	return nil
}

// SetStatus moves the in-memory status. Moving to completed only records
// the intent; storing it is the completion workflow's job. An intent is
// left through DiscardCompletion, not by picking another status.
func (e *Editor) SetStatus(to Status) error {
	if e.ap.CompletionIntent() {
		if to == StatusCompleted {
			return nil
		}
		return ErrTerminal
	}
	if err := CanTransition(e.ap.Status, to); err != nil {
		return err
	}
	e.ap.Status = to
	return nil
}

// DiscardCompletion drops a completion intent and restores the stored
// status.
func (e *Editor) DiscardCompletion() {
	if !e.ap.CompletionIntent() {
		return
	}
	if e.ap.PriorStatus == "" {
		e.ap.Status = InitialStatus()
		return
	}
	e.ap.Status = e.ap.PriorStatus
}

// ===============================
// Generic field gate
// ===============================

// SetField applies a form value to one field. On any error the original
// appointment is returned unchanged.
func SetField(ap Appointment, field Field, value string) (Appointment, error) {
	ed, err := Edit(ap)
	if err != nil {
		return ap, err
	}

	switch field {
	case FieldTitle:
		err = ed.SetTitle(value)
	case FieldDescription:
		err = ed.SetDescription(value)
	case FieldStartAt:
		err = ed.SetStart(value)
	case FieldEndAt:
		err = ed.SetEnd(value)
	case FieldClientID, FieldEmployeeID:
		var id *uint
		id, err = parseOptionalID(value)
		if err != nil {
			return ap, err
		}
		if field == FieldClientID {
			err = ed.SetClient(id)
		} else {
			err = ed.SetEmployee(id)
		}
	case FieldStatus:
		var st Status
		st, err = ParseStatus(value)
		if err != nil {
			return ap, err
		}
		err = ed.SetStatus(st)
	default:
		err = ErrUnknownField
	}

	if err != nil {
		return ap, err
	}
	return ed.Appointment(), nil
}

func parseOptionalID(value string) (*uint, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil || n == 0 {
		return nil, httperr.ErrBusiness("invalid_id")
	}
	id := uint(n)
	return &id, nil
}

// ===============================
// Validation before persistence
// ===============================

func Validate(ap Appointment) error {
	var missing []string

	if strings.TrimSpace(ap.Title) == "" {
		missing = append(missing, string(FieldTitle))
	}

	start, _, startOK := ParseLocal(ap.StartAt)
	if !startOK {
		missing = append(missing, string(FieldStartAt))
	}

	if ap.ClientID == nil {
		missing = append(missing, string(FieldClientID))
	}

	if startOK && strings.TrimSpace(ap.EndAt) != "" {
		end, _, endOK := ParseLocal(ap.EndAt)
		if !endOK || !end.After(start) {
			missing = append(missing, string(FieldEndAt))
		}
	}

	if len(missing) > 0 {
		return httperr.ErrValidation("validation_failed", missing...)
	}
	return nil
}
