package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-backoffice/internal/db"
	"github.com/BruksfildServices01/salon-backoffice/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/salon-backoffice/internal/infra/repository"
	"github.com/BruksfildServices01/salon-backoffice/internal/routes"
)

func main() {

	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := buildDeps(cfg, logger)
	defer deps.Audit.Close()

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, deps, cfg, logger)

	logger.Info("server running", zap.String("addr", cfg.Addr()), zap.Bool("in_memory", cfg.InMemory()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// buildDeps picks Postgres when DATABASE_URL is set and the seeded
// in-memory store otherwise.
func buildDeps(cfg *config.Config, logger *zap.Logger) routes.Deps {
	if cfg.InMemory() {
		store := memory.NewStore()
		store.Seed(memory.DemoSeed())

		return routes.Deps{
			Appointments: store,
			Sales:        store,
			Catalog:      store,
			Commissions:  store,
			Audit:        audit.NewDispatcher(audit.SinkFunc(store.SaveAuditLog), logger),
		}
	}

	db := dbpkg.NewDB(cfg, logger)
	sales := infraRepo.NewSaleGormRepository(db)

	return routes.Deps{
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Sales:        sales,
		Catalog:      sales,
		Commissions:  infraRepo.NewCommissionGormRepository(db),
		Audit:        audit.NewDispatcher(audit.New(db), logger),
	}
}
