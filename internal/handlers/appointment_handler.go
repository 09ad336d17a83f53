package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/dto"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	store    *ucAppointment.StoreAppointment
	status   *ucAppointment.ChangeAppointmentStatus
	timezone string
	logger   *zap.Logger
}

func NewAppointmentHandler(
	store *ucAppointment.StoreAppointment,
	status *ucAppointment.ChangeAppointmentStatus,
	tz string,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		store:    store,
		status:   status,
		timezone: tz,
		logger:   logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req domain.Appointment
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid data.")
		return
	}

	ap, err := h.store.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		writeError(c, h.logger, err, "failed_to_create_appointment")
		return
	}

	c.JSON(201, dto.Appointment(h.timezone, *ap))
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err, "failed_to_load_appointment")
		return
	}

	httpresp.OK(c, dto.Appointment(h.timezone, *ap))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req domain.Appointment
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid data.")
		return
	}

	ap, err := h.store.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		writeError(c, h.logger, err, "failed_to_update_appointment")
		return
	}

	httpresp.OK(c, dto.Appointment(h.timezone, *ap))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid data.")
		return
	}

	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(c, h.logger, err, "invalid_status")
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), middleware.UserID(c), id, to)
	if err != nil {
		writeError(c, h.logger, err, "failed_to_update_status")
		return
	}

	httpresp.OK(c, dto.Appointment(h.timezone, *ap))
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
