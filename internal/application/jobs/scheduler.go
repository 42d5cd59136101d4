// Package jobs ejecuta tareas periódicas dentro del proceso de la API
// (barrido de vencimientos, limpieza de CSRF).
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Job tarea periódica. Run recibe el contexto del scheduler.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler dispara cada Job en su propio ticker hasta que se cancele el contexto.
// Una ejecución no se solapa consigo misma: el siguiente tick espera a que termine la actual.
type Scheduler struct {
	jobs []Job
	log  zerolog.Logger
	wg   sync.WaitGroup
}

// NewScheduler construye el scheduler. Los jobs con Interval <= 0 se ignoran.
func NewScheduler(log zerolog.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs, log: log}
}

// Start lanza un goroutine por job y retorna de inmediato.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		if job.Interval <= 0 || job.Run == nil {
			s.log.Warn().Str("job", job.Name).Msg("job deshabilitado: intervalo inválido")
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, job)
		s.log.Info().Str("job", job.Name).Dur("interval", job.Interval).Msg("job programado")
	}
}

// Wait bloquea hasta que todos los loops terminen (tras cancelar el contexto de Start).
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

// runOnce ejecuta el job; un panic se convierte en error y el loop sigue.
func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	started := time.Now()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return job.Run(ctx)
	}()
	if err != nil {
		s.log.Error().Err(err).Str("job", job.Name).Msg("job falló")
		return
	}
	s.log.Debug().Str("job", job.Name).Dur("elapsed", time.Since(started)).Msg("job ejecutado")
}
