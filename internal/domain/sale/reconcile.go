package sale

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

// Tolerance absorbs float drift from JSON-number money fields.
var Tolerance = decimal.New(1, -2)

type Issue string

const (
	IssueClientMissing  Issue = "client_id"
	IssueNoLineItems    Issue = "line_items"
	IssueNoPayments     Issue = "payments"
	IssueTotalsMismatch Issue = "totals"
)

type Totals struct {
	LineItems decimal.Decimal
	Payments  decimal.Decimal

	// nonFinite is set when a price or amount is NaN or infinite; such a
	// sale never balances.
	nonFinite bool
}

// Difference is line items minus payments.
func (t Totals) Difference() decimal.Decimal {
	return t.LineItems.Sub(t.Payments)
}

func (t Totals) Balanced() bool {
	return !t.nonFinite && t.Difference().Abs().LessThan(Tolerance)
}

// ComputeTotals recomputes both sums from the current rows. Non-finite
// values are left out of the sums and mark the totals unbalanced.
func ComputeTotals(s Sale) Totals {
	t := Totals{LineItems: decimal.Zero, Payments: decimal.Zero}
	for _, li := range s.LineItems {
		if !finite(li.UnitPrice) {
			t.nonFinite = true
			continue
		}
		line := decimal.NewFromFloat(li.UnitPrice).Mul(decimal.NewFromInt(int64(li.Quantity)))
		t.LineItems = t.LineItems.Add(line)
	}
	for _, p := range s.Payments {
		if !finite(p.Amount) {
			t.nonFinite = true
			continue
		}
		t.Payments = t.Payments.Add(decimal.NewFromFloat(p.Amount))
	}
	return t
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Check returns every unmet submission condition; each is detected
// independently of the others.
func Check(s Sale) []Issue {
	var issues []Issue
	if s.ClientID == nil {
		issues = append(issues, IssueClientMissing)
	}
	if len(s.LineItems) == 0 {
		issues = append(issues, IssueNoLineItems)
	}
	if len(s.Payments) == 0 {
		issues = append(issues, IssueNoPayments)
	}
	if !ComputeTotals(s).Balanced() {
		issues = append(issues, IssueTotalsMismatch)
	}
	return issues
}

func CanSubmit(s Sale) bool {
	return len(Check(s)) == 0
}

// CheckLines reports malformed rows: a line needs an article, a credited
// employee, quantity >= 1 and a finite non-negative price; a payment
// needs a method and a finite non-negative amount.
func CheckLines(s Sale) []string {
	var bad []string
	for i, li := range s.LineItems {
		if li.ArticleID == nil || li.EmployeeID == nil || li.Quantity < 1 || !finite(li.UnitPrice) || li.UnitPrice < 0 {
			bad = append(bad, rowName("line_items", i))
		}
	}
	for i, p := range s.Payments {
		if p.PaymentMethodID == nil || !finite(p.Amount) || p.Amount < 0 {
			bad = append(bad, rowName("payments", i))
		}
	}
	return bad
}

// Validate combines Check and CheckLines into a single ValidationError.
func Validate(s Sale) error {
	var fields []string
	for _, is := range Check(s) {
		fields = append(fields, string(is))
	}
	fields = append(fields, CheckLines(s)...)
	if len(fields) > 0 {
		return httperr.ErrValidation("validation_failed", fields...)
	}
	return nil
}

func rowName(list string, i int) string {
	return list + "[" + strconv.Itoa(i) + "]"
}
