// Package backoffice is the HTTP client for the salon backoffice API.
// Every non-2xx response or network failure surfaces as an
// *httperr.TransportError.
package backoffice

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/session"
)

type Client struct {
	http    *resty.Client
	session *session.Session
	logger  *zap.Logger
	now     func() time.Time
}

func New(
	baseURL string,
	timeout time.Duration,
	sess *session.Session,
	logger *zap.Logger,
) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		h.SetTimeout(timeout)
	}

	return &Client{
		http:    h,
		session: sess,
		logger:  logger,
		now:     time.Now,
	}
}

func (c *Client) Close() error {
	return c.http.Close()
}

// request starts an authenticated request. An anonymous or expired
// session never reaches the network.
func (c *Client) request(ctx context.Context, op string) (*resty.Request, error) {
	token, err := c.session.Bearer(c.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c.http.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

func (c *Client) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Warn("backoffice call failed", zap.String("op", op), zap.Error(err))
		return &httperr.TransportError{Op: op, Err: err}
	}
	if !resp.IsError() {
		return nil
	}

	te := &httperr.TransportError{Op: op, StatusCode: resp.StatusCode()}
	var body httperr.HTTPError
	if jerr := json.Unmarshal([]byte(resp.String()), &body); jerr == nil {
		te.Code = body.Code
		te.Message = body.Message
	}

	c.logger.Warn("backoffice call rejected",
		zap.String("op", op),
		zap.Int("status", te.StatusCode),
		zap.String("error_code", te.Code),
	)
	return te
}

func idParam(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
