package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/dto"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
)

// CatalogHandler serves the reference data a sale editor needs.
type CatalogHandler struct {
	repo   domain.CatalogRepository
	logger *zap.Logger
}

func NewCatalogHandler(repo domain.CatalogRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{repo: repo, logger: logger}
}

func (h *CatalogHandler) Articles(c *gin.Context) {
	list, err := h.repo.ListArticles(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "failed_to_list_articles")
		return
	}
	httpresp.List(c, dto.Articles(list))
}

func (h *CatalogHandler) Employees(c *gin.Context) {
	list, err := h.repo.ListEmployees(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "failed_to_list_employees")
		return
	}
	httpresp.List(c, dto.Employees(list))
}

func (h *CatalogHandler) PaymentMethods(c *gin.Context) {
	list, err := h.repo.ListPaymentMethods(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "failed_to_list_payment_methods")
		return
	}
	httpresp.List(c, dto.PaymentMethods(list))
}

func (h *CatalogHandler) Clients(c *gin.Context) {
	list, err := h.repo.ListClients(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "failed_to_list_clients")
		return
	}
	httpresp.List(c, dto.Clients(list))
}
