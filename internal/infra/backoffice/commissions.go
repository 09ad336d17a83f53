package backoffice

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/commission"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
)

// CommissionFeed fetches raw commission rows for the inclusive date range.
func (c *Client) CommissionFeed(ctx context.Context, from, to time.Time) ([]commission.RawRow, error) {
	const op = "commission feed"

	req, err := c.request(ctx, op)
	if err != nil {
		return nil, err
	}

	var out httpresp.ListResponse[commission.RawRow]
	resp, err := req.
		SetQueryParam("from", from.Format("2006-01-02")).
		SetQueryParam("to", to.Format("2006-01-02")).
		SetResult(&out).
		Get("/commissions")
	if err := c.check(op, resp, err); err != nil {
		return nil, err
	}
	return out.Data, nil
}
