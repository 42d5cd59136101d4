// Comando jobs: ejecuta una vez las tareas periódicas para lanzarlas desde un cron externo.
//
//	jobs expiry-sweep
//	jobs csrf-cleanup
//	jobs psr-sync --timeout 5m
package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Farmadist-api/internal/bootstrap"
	"github.com/jhoicas/Farmadist-api/pkg/config"
	"github.com/jhoicas/Farmadist-api/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "jobs",
		Short:         "Tareas de mantenimiento de Farmadist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "tiempo máximo de ejecución")

	root.AddCommand(
		jobCmd("expiry-sweep", "Marca como vencidos los lotes cuya fecha de vencimiento ya pasó", &timeout,
			func(c *bootstrap.Container) func(context.Context) error { return c.ExpirySweepJob }),
		jobCmd("csrf-cleanup", "Limpia tokens CSRF vencidos y borra sesiones expiradas", &timeout,
			func(c *bootstrap.Container) func(context.Context) error { return c.CSRFCleanupJob }),
		jobCmd("psr-sync", "Sincroniza los PSR desde el HRMS", &timeout,
			func(c *bootstrap.Container) func(context.Context) error { return c.PSRSyncJob }),
	)
	return root
}

// jobCmd subcomando que arma el contenedor, corre el job una vez y libera conexiones.
func jobCmd(name, short string, timeout *time.Duration, pick func(*bootstrap.Container) func(context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

			ctx, cancel := context.WithTimeout(cmd.Context(), *timeout)
			defer cancel()

			deps, err := bootstrap.Build(ctx, cfg, log)
			if err != nil {
				log.Error().Err(err).Str("job", name).Msg("inicialización")
				return err
			}
			defer deps.Close()

			if err := pick(deps)(ctx); err != nil {
				log.Error().Err(err).Str("job", name).Msg("job falló")
				return err
			}
			return nil
		},
	}
}
