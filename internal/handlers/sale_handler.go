package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/dto"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	ucSale "github.com/BruksfildServices01/salon-backoffice/internal/usecase/sale"
)

type SaleHandler struct {
	create   *ucSale.CreateSale
	list     *ucSale.ListAppointmentSales
	timezone string
	logger   *zap.Logger
}

func NewSaleHandler(
	create *ucSale.CreateSale,
	list *ucSale.ListAppointmentSales,
	tz string,
	logger *zap.Logger,
) *SaleHandler {
	return &SaleHandler{
		create:   create,
		list:     list,
		timezone: tz,
		logger:   logger,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *SaleHandler) Create(c *gin.Context) {
	var req domain.Sale
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid data.")
		return
	}

	key := c.GetHeader(httpresp.IdempotencyHeader)

	s, created, err := h.create.Execute(c.Request.Context(), middleware.UserID(c), req, key)
	if err != nil {
		writeError(c, h.logger, err, "failed_to_create_sale")
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, dto.Sale(h.timezone, *s))
}

// ======================================================
// LIST BY APPOINTMENT
// ======================================================

func (h *SaleHandler) ListByAppointment(c *gin.Context) {
	raw := c.Query("appointment_id")
	if raw == "" {
		httperr.BadRequest(c, "missing_appointment_id", "appointment_id is required.")
		return
	}
	appointmentID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment_id.")
		return
	}

	sales, err := h.list.Execute(c.Request.Context(), uint(appointmentID))
	if err != nil {
		writeError(c, h.logger, err, "failed_to_list_sales")
		return
	}

	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.Sale(h.timezone, s))
	}
	httpresp.List(c, out)
}
