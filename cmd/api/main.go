package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmadist-api/internal/application/jobs"
	"github.com/jhoicas/Farmadist-api/internal/bootstrap"
	infrapdf "github.com/jhoicas/Farmadist-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Farmadist-api/internal/infrastructure/ratelimit"
	httpRouter "github.com/jhoicas/Farmadist-api/internal/interfaces/http"
	"github.com/jhoicas/Farmadist-api/pkg/config"
	"github.com/jhoicas/Farmadist-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	deps, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicialización")
	}
	defer deps.Close()

	// Limitador compartido entre réplicas solo si hay Redis.
	var limiterStorage fiber.Storage
	if cfg.RateLimit.RedisURL != "" {
		store, err := ratelimit.NewRedisStorage(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer store.Close()
		limiterStorage = store
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler(cfg.App.IsDevelopment()),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})

	httpRouter.UseMiddleware(app, deps.Sessions, log.Component("http"), httpRouter.MiddlewareConfig{
		AllowOrigins:    cfg.CORS.AllowOrigins,
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
		LimiterStorage:  limiterStorage,
	})

	// Swagger UI en http://localhost:<port>/docs cuando el documento fue generado.
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Farmadist API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       deps.AuthUC,
		Sessions:     deps.Sessions,
		UserUC:       deps.UserUC,
		RoleUC:       deps.RoleUC,
		StoreUC:      deps.StoreUC,
		ProductUC:    deps.ProductUC,
		CollectionUC: deps.CollectionUC,
		ActivityUC:   deps.ActivityUC,
		Movements:    deps.Movements,
		Ledger:       deps.Ledger,
		ExpirySweep:  deps.ExpirySweep,
		LedgerPDF:    infrapdf.NewMarotoLedgerGenerator(),
		PSRSync:      deps.PSRSync,
		DashboardUC:  deps.DashboardUC,
		Cookies: httpRouter.CookieConfig{
			Secure: cfg.Session.CookieSecure,
			Domain: cfg.Session.CookieDomain,
		},
	})

	jobsCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log.Component("jobs"), deps.Jobs(cfg.Jobs)...)
		scheduler.Start(jobsCtx)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	stopJobs()
	if scheduler != nil {
		scheduler.Wait()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
