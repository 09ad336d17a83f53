package sale

import (
	"time"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

// SoldAtLayout is the local datetime layout used on the wire for sold_at.
const SoldAtLayout = "2006-01-02T15:04"

type LineItem struct {
	ArticleID  *uint   `json:"article_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	EmployeeID *uint   `json:"employee_id"`
}

type Payment struct {
	PaymentMethodID *uint   `json:"payment_method_id"`
	Amount          float64 `json:"amount"`
}

type Sale struct {
	ID            *uint      `json:"id,omitempty"`
	ClientID      *uint      `json:"client_id"`
	AppointmentID *uint      `json:"appointment_id"`
	SoldAt        string     `json:"sold_at"`
	Observations  string     `json:"observations"`
	LineItems     []LineItem `json:"line_items"`
	Payments      []Payment  `json:"payments"`
}

var ErrNoSuchRow = httperr.ErrBusiness("no_such_row")

// NewDraft pre-populates a sale for an appointment being completed.
func NewDraft(clientID, appointmentID *uint, soldAt string) Sale {
	return Sale{
		ClientID:      clientID,
		AppointmentID: appointmentID,
		SoldAt:        soldAt,
		LineItems:     []LineItem{},
		Payments:      []Payment{},
	}
}

// SoldAtFromEnd uses the appointment end time as the sale time, falling
// back to now when the end time is blank or unparseable.
func SoldAtFromEnd(endAt string, now time.Time) string {
	if t, _, ok := appointment.ParseLocal(endAt); ok {
		return t.Format(SoldAtLayout)
	}
	return now.Format(SoldAtLayout)
}

// --------------------------------------------------
// Line items
// --------------------------------------------------

func (s *Sale) AddLineItem() int {
	s.LineItems = append(s.LineItems, LineItem{Quantity: 1})
	return len(s.LineItems) - 1
}

func (s *Sale) RemoveLineItem(i int) error {
	if i < 0 || i >= len(s.LineItems) {
		return ErrNoSuchRow
	}
	s.LineItems = append(s.LineItems[:i], s.LineItems[i+1:]...)
	return nil
}

// SelectArticle sets the line's article and copies its catalog price.
func (s *Sale) SelectArticle(i int, a Article) error {
	if i < 0 || i >= len(s.LineItems) {
		return ErrNoSuchRow
	}
	id := a.ID
	s.LineItems[i].ArticleID = &id
	s.LineItems[i].UnitPrice = a.Price
	return nil
}

// SetUnitPrice overrides the catalog price of a line.
func (s *Sale) SetUnitPrice(i int, price float64) error {
	if i < 0 || i >= len(s.LineItems) {
		return ErrNoSuchRow
	}
	s.LineItems[i].UnitPrice = price
	return nil
}

func (s *Sale) SetQuantity(i, qty int) error {
	if i < 0 || i >= len(s.LineItems) {
		return ErrNoSuchRow
	}
	s.LineItems[i].Quantity = qty
	return nil
}

func (s *Sale) SetLineEmployee(i int, employeeID uint) error {
	if i < 0 || i >= len(s.LineItems) {
		return ErrNoSuchRow
	}
	s.LineItems[i].EmployeeID = &employeeID
	return nil
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (s *Sale) AddPayment(methodID uint, amount float64) int {
	s.Payments = append(s.Payments, Payment{PaymentMethodID: &methodID, Amount: amount})
	return len(s.Payments) - 1
}

func (s *Sale) SetPaymentAmount(i int, amount float64) error {
	if i < 0 || i >= len(s.Payments) {
		return ErrNoSuchRow
	}
	s.Payments[i].Amount = amount
	return nil
}

func (s *Sale) RemovePayment(i int) error {
	if i < 0 || i >= len(s.Payments) {
		return ErrNoSuchRow
	}
	s.Payments = append(s.Payments[:i], s.Payments[i+1:]...)
	return nil
}
