package dto

import (
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/timezone"
)

func Sale(tz string, m models.Sale) sale.Sale {
	id := m.ID
	clientID := m.ClientID

	out := sale.Sale{
		ID:            &id,
		ClientID:      &clientID,
		AppointmentID: m.AppointmentID,
		SoldAt:        timezone.FormatLocal(tz, m.SoldAt),
		Observations:  m.Observations,
		LineItems:     make([]sale.LineItem, 0, len(m.LineItems)),
		Payments:      make([]sale.Payment, 0, len(m.Payments)),
	}
	for _, li := range m.LineItems {
		articleID, employeeID := li.ArticleID, li.EmployeeID
		out.LineItems = append(out.LineItems, sale.LineItem{
			ArticleID:  &articleID,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			EmployeeID: &employeeID,
		})
	}
	for _, p := range m.Payments {
		methodID := p.PaymentMethodID
		out.Payments = append(out.Payments, sale.Payment{
			PaymentMethodID: &methodID,
			Amount:          p.Amount,
		})
	}
	return out
}

// SaleModel builds a storable sale from a validated wire sale.
func SaleModel(tz string, s sale.Sale) (models.Sale, error) {
	soldAt, err := timezone.ParseLocal(tz, s.SoldAt)
	if err != nil {
		return models.Sale{}, err
	}

	m := models.Sale{
		ClientID:      *s.ClientID,
		AppointmentID: s.AppointmentID,
		SoldAt:        soldAt,
		Observations:  s.Observations,
		LineItems:     make([]models.SaleLineItem, 0, len(s.LineItems)),
		Payments:      make([]models.Payment, 0, len(s.Payments)),
	}
	for _, li := range s.LineItems {
		m.LineItems = append(m.LineItems, models.SaleLineItem{
			ArticleID:  *li.ArticleID,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			EmployeeID: *li.EmployeeID,
		})
	}
	for _, p := range s.Payments {
		m.Payments = append(m.Payments, models.Payment{
			PaymentMethodID: *p.PaymentMethodID,
			Amount:          p.Amount,
		})
	}
	return m, nil
}
