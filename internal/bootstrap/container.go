// Package bootstrap arma el grafo de dependencias compartido por la API y el CLI de jobs.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/Farmadist-api/internal/application/analytics"
	"github.com/jhoicas/Farmadist-api/internal/application/auth"
	"github.com/jhoicas/Farmadist-api/internal/application/inventory"
	"github.com/jhoicas/Farmadist-api/internal/application/jobs"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/application/psr"
	"github.com/jhoicas/Farmadist-api/internal/application/usecase"
	"github.com/jhoicas/Farmadist-api/internal/infrastructure/hrms"
	"github.com/jhoicas/Farmadist-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Farmadist-api/pkg/config"
	"github.com/jhoicas/Farmadist-api/pkg/logger"
)

// Container casos de uso listos para montar en HTTP o ejecutar desde el CLI.
type Container struct {
	Pool *pgxpool.Pool
	HRMS *hrms.Client // nil si el HRMS no está configurado

	Sessions     *auth.SessionService
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	RoleUC       *usecase.RoleUseCase
	StoreUC      *usecase.StoreUseCase
	ProductUC    *usecase.ProductUseCase
	CollectionUC *usecase.CollectionUseCase
	ActivityUC   *usecase.ActivityUseCase
	Movements    *inventory.RegisterMovementUseCase
	Ledger       *inventory.LedgerUseCase
	ExpirySweep  *inventory.ExpirySweepUseCase
	PSRSync      *psr.SyncUseCase
	DashboardUC  *appanalytics.DashboardUseCase

	log *logger.Logger
}

// Build abre PostgreSQL (obligatorio) y el HRMS (opcional) y construye los casos de uso.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewInventoryBatchRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	activityUC := usecase.NewActivityUseCase(postgres.NewActivityLogRepository(pool), log.Component("activity"))
	sessions := auth.NewSessionService(postgres.NewSessionRepository(pool), auth.SessionConfig{
		JWTSecret: cfg.JWT.Secret,
		Issuer:    cfg.JWT.Issuer,
		TTL:       cfg.Session.TTL,
		CSRFTTL:   cfg.Session.CSRFTTL,
	}, log.Component("session"))

	c := &Container{
		Pool:         pool,
		Sessions:     sessions,
		AuthUC:       auth.NewAuthUseCase(userRepo, roleRepo, sessions, activityUC, log.Component("auth")),
		UserUC:       usecase.NewUserUseCase(userRepo, roleRepo),
		RoleUC:       usecase.NewRoleUseCase(roleRepo),
		StoreUC:      usecase.NewStoreUseCase(storeRepo),
		ProductUC:    usecase.NewProductUseCase(productRepo),
		CollectionUC: usecase.NewCollectionUseCase(postgres.NewCollectionRepository(pool)),
		ActivityUC:   activityUC,
		Movements: inventory.NewRegisterMovementUseCase(
			txRunner, productRepo, storeRepo, batchRepo, itemRepo, activityUC, log.Component("inventory"),
		),
		Ledger:      inventory.NewLedgerUseCase(postgres.NewInventoryMovementRepository(pool)),
		ExpirySweep: inventory.NewExpirySweepUseCase(batchRepo, txRunner, activityUC, log.Component("expiry_sweep")),
		DashboardUC: appanalytics.NewDashboardUseCase(postgres.NewDashboardRepository(pool)),
		log:         log,
	}

	// Sin HRMS la API arranca igual; la sincronización responde 503.
	var source ports.LegacyPSRSource
	client, err := hrms.Open(cfg.HRMS, log.Component("hrms"))
	switch {
	case err == nil:
		c.HRMS = client
		source = client
	case errors.Is(err, config.ErrHRMSNotConfigured):
		log.Warn().Err(err).Msg("sincronización de PSR deshabilitada")
	default:
		pool.Close()
		return nil, fmt.Errorf("conexión al HRMS: %w", err)
	}
	c.PSRSync = psr.NewSyncUseCase(source, postgres.NewPSRRepository(pool), activityUC, log.Component("psr_sync"))

	return c, nil
}

// Close libera las conexiones abiertas por Build.
func (c *Container) Close() {
	if c.HRMS != nil {
		if err := c.HRMS.Close(); err != nil {
			c.log.Error().Err(err).Msg("cierre del HRMS")
		}
	}
	c.Pool.Close()
}

// ExpirySweepJob ejecuta un barrido con el actor de sistema y la hora actual.
func (c *Container) ExpirySweepJob(ctx context.Context) error {
	res, err := c.ExpirySweep.Run(ctx, ports.SystemActor, time.Now())
	if err != nil {
		return err
	}
	c.log.Info().
		Int("batches", res.BatchesExpired).
		Int("items", res.ItemsExpired).
		Int64("units", res.UnitsWrittenOff).
		Int("failures", res.Failures).
		Msg("barrido de vencimientos")
	return nil
}

// CSRFCleanupJob limpia tokens CSRF vencidos y borra sesiones expiradas.
func (c *Container) CSRFCleanupJob(ctx context.Context) error {
	cleared, deleted, err := c.Sessions.CleanupExpiredCSRF(ctx)
	if err != nil {
		return err
	}
	c.log.Info().Int64("csrf_cleared", cleared).Int64("sessions_deleted", deleted).Msg("limpieza de sesiones")
	return nil
}

// PSRSyncJob sincroniza los PSR desde el HRMS.
func (c *Container) PSRSyncJob(ctx context.Context) error {
	res, err := c.PSRSync.Sync(ctx, ports.SystemActor)
	if err != nil {
		return err
	}
	c.log.Info().
		Int("fetched", res.Fetched).
		Int("inserted", res.Inserted).
		Int("updated", res.Updated).
		Int("unchanged", res.Unchanged).
		Int("failed", res.Failed).
		Msg("sincronización de PSR")
	return nil
}

// Jobs tareas periódicas según la configuración.
func (c *Container) Jobs(cfg config.JobsConfig) []jobs.Job {
	return []jobs.Job{
		{Name: "expiry-sweep", Interval: cfg.ExpirySweepInterval, Run: c.ExpirySweepJob},
		{Name: "csrf-cleanup", Interval: cfg.CSRFCleanupInterval, Run: c.CSRFCleanupJob},
	}
}
