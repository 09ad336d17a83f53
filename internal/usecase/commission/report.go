package commission

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/commission"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

type FeedSource interface {
	CommissionFeed(ctx context.Context, from, to time.Time) ([]domain.RawRow, error)
}

type Report struct {
	From   time.Time     `json:"from"`
	To     time.Time     `json:"to"`
	Rows   []domain.Row  `json:"rows"`
	Totals domain.Totals `json:"totals"`
}

// ErrInvalidRange rejects a report whose last day precedes its first.
var ErrInvalidRange = httperr.ErrBusiness("invalid_range")

type GetCommissionReport struct {
	feed   FeedSource
	logger *zap.Logger
}

func NewGetCommissionReport(feed FeedSource, logger *zap.Logger) *GetCommissionReport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GetCommissionReport{feed: feed, logger: logger}
}

// Execute merges the feed for [from, to] and totals the rows matching
// query.
func (uc *GetCommissionReport) Execute(
	ctx context.Context,
	from time.Time,
	to time.Time,
	query string,
) (*Report, error) {

	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	raw, err := uc.feed.CommissionFeed(ctx, from, to)
	if err != nil {
		return nil, err
	}

	merged := domain.Merge(raw)
	rows := domain.Filter(merged, query)

	uc.logger.Debug("commission report built",
		zap.Int("raw_rows", len(raw)),
		zap.Int("employees", len(merged)),
		zap.Int("filtered", len(rows)),
	)

	return &Report{
		From:   from,
		To:     to,
		Rows:   rows,
		Totals: domain.Summarize(rows),
	}, nil
}
