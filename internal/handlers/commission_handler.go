package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/commission"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/salon-backoffice/internal/timezone"
)

// CommissionHandler serves the raw per-day feed. Merging happens on the
// client.
type CommissionHandler struct {
	repo     commission.Repository
	timezone string
	logger   *zap.Logger
}

func NewCommissionHandler(repo commission.Repository, tz string, logger *zap.Logger) *CommissionHandler {
	return &CommissionHandler{repo: repo, timezone: tz, logger: logger}
}

// Feed answers GET /commissions?from=YYYY-MM-DD&to=YYYY-MM-DD; both days
// are inclusive.
func (h *CommissionHandler) Feed(c *gin.Context) {
	from, err := timezone.ParseDate(h.timezone, c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_from", "Invalid from date.")
		return
	}
	to, err := timezone.ParseDate(h.timezone, c.Query("to"))
	if err != nil {
		httperr.BadRequest(c, "invalid_to", "Invalid to date.")
		return
	}
	if to.Before(from) {
		httperr.BadRequest(c, "invalid_date_range", "from must not be after to.")
		return
	}

	rows, err := h.repo.CommissionFeed(c.Request.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		writeError(c, h.logger, err, "failed_to_load_commissions")
		return
	}
	httpresp.List(c, rows)
}
