package backoffice

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
)

// CreateSale submits a sale. A non-empty key makes retries return the
// sale stored by the first attempt.
func (c *Client) CreateSale(ctx context.Context, s sale.Sale, idempotencyKey string) (sale.Sale, error) {
	const op = "create sale"

	req, err := c.request(ctx, op)
	if err != nil {
		return sale.Sale{}, err
	}
	if idempotencyKey != "" {
		req.SetHeader(httpresp.IdempotencyHeader, idempotencyKey)
	}

	var out sale.Sale
	resp, err := req.
		SetBody(s).
		SetResult(&out).
		Post("/sales")
	if err := c.check(op, resp, err); err != nil {
		return sale.Sale{}, err
	}
	return out, nil
}

func (c *Client) ListSalesByAppointment(ctx context.Context, appointmentID uint) ([]sale.Sale, error) {
	const op = "list sales"

	req, err := c.request(ctx, op)
	if err != nil {
		return nil, err
	}

	var out httpresp.ListResponse[sale.Sale]
	resp, err := req.
		SetQueryParam("appointment_id", idParam(appointmentID)).
		SetResult(&out).
		Get("/sales")
	if err := c.check(op, resp, err); err != nil {
		return nil, err
	}
	return out.Data, nil
}
