package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/config"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/commission"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/handlers"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
	ucSale "github.com/BruksfildServices01/salon-backoffice/internal/usecase/sale"
)

// Deps are the storage singletons behind the API. Postgres and the
// in-memory store both satisfy them.
type Deps struct {
	Appointments appointment.Repository
	Sales        sale.Repository
	Catalog      sale.CatalogRepository
	Commissions  commission.Repository
	Audit        *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, deps Deps, cfg *config.Config, logger *zap.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.RequestLogger(logger))

	// ======================================================
	// USE CASES
	// ======================================================
	storeAppointmentUC := ucAppointment.NewStoreAppointment(
		deps.Appointments,
		deps.Audit,
		cfg.Timezone,
	)

	changeStatusUC := ucAppointment.NewChangeAppointmentStatus(
		deps.Appointments,
		deps.Audit,
		cfg.Timezone,
	)

	createSaleUC := ucSale.NewCreateSale(
		deps.Sales,
		deps.Appointments,
		deps.Audit,
		cfg.Timezone,
	)

	listSalesUC := ucSale.NewListAppointmentSales(deps.Sales)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		storeAppointmentUC,
		changeStatusUC,
		cfg.Timezone,
		logger,
	)
	saleHandler := handlers.NewSaleHandler(createSaleUC, listSalesUC, cfg.Timezone, logger)
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, logger)
	commissionHandler := handlers.NewCommissionHandler(deps.Commissions, cfg.Timezone, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// CATALOG
		// ------------------------------
		api.GET("/articles", catalogHandler.Articles)
		api.GET("/employees", catalogHandler.Employees)
		api.GET("/payment-methods", catalogHandler.PaymentMethods)
		api.GET("/clients", catalogHandler.Clients)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.PUT("/appointments/:id", appointmentHandler.Update)
		api.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

		// ------------------------------
		// SALES
		// ------------------------------
		api.POST("/sales", saleHandler.Create)
		api.GET("/sales", saleHandler.ListByAppointment)

		// ------------------------------
		// COMMISSIONS
		// ------------------------------
		api.GET("/commissions", commissionHandler.Feed)
	}
}
