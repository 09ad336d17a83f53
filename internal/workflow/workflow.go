// Package workflow assembles the client side of the backoffice: the API
// client, the saga store and the use cases that drive them.
package workflow

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/config"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/infra/backoffice"
	"github.com/BruksfildServices01/salon-backoffice/internal/session"
	ucAppointment "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
	ucCommission "github.com/BruksfildServices01/salon-backoffice/internal/usecase/commission"
)

var ErrNothingToResume = httperr.ErrBusiness("nothing_to_resume")

type Workflow struct {
	Client      *backoffice.Client
	Save        *ucAppointment.SaveAppointment
	Complete    *ucAppointment.CompleteAppointment
	Commissions *ucCommission.GetCommissionReport

	redis *redis.Client
}

func New(cfg *config.Config, sess *session.Session, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := backoffice.New(cfg.BackofficeURL, cfg.BackofficeTimeout, sess, logger)
	rdb := newRedisClient(cfg.RedisAddr, logger)

	var store ucAppointment.SagaStore
	if rdb != nil {
		store = ucAppointment.NewRedisSagaStore(rdb, cfg.SagaTTL)
	} else {
		store = ucAppointment.NewMemorySagaStore()
	}

	return &Workflow{
		Client:      client,
		Save:        ucAppointment.NewSaveAppointment(client, logger),
		Complete:    ucAppointment.NewCompleteAppointment(client, store, logger, nil),
		Commissions: ucCommission.NewGetCommissionReport(client, logger),
		redis:       rdb,
	}
}

// Durable reports whether saga state survives a restart.
func (w *Workflow) Durable() bool {
	return w.redis != nil
}

func (w *Workflow) Close() error {
	if w.redis != nil {
		_ = w.redis.Close()
	}
	return w.Client.Close()
}

// Resume retries the status update of a completion whose sale is stored
// but whose appointment never reached completed. It never creates a sale.
func (w *Workflow) Resume(ctx context.Context, appointmentID uint) (*ucAppointment.Result, error) {
	st, err := w.Complete.Pending(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if st == nil || !st.NeedsStatusRetry() {
		return nil, ErrNothingToResume
	}

	ap, err := w.Client.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	// Already completed on the backend: only the local record is behind.
	if ap.IsLocked() {
		return w.Complete.Execute(ctx, ap, noCapture)
	}

	ed, err := domain.Edit(ap)
	if err != nil {
		return nil, err
	}
	if err := ed.SetStatus(domain.StatusCompleted); err != nil {
		return nil, err
	}

	return w.Complete.Execute(ctx, ed.Appointment(), noCapture)
}

var noCapture = ucAppointment.CaptureFunc(
	func(context.Context, ucAppointment.CaptureRequest) (sale.Sale, error) {
		return sale.Sale{}, ucAppointment.ErrCaptureCancelled
	},
)

// newRedisClient returns nil when addr is empty or the server does not
// answer; saga state then lives in memory only.
func newRedisClient(addr string, logger *zap.Logger) *redis.Client {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, saga state kept in memory",
			zap.String("addr", addr),
			zap.Error(err),
		)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
