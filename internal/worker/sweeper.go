package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/infras/otel"
	sessionService "studiodesk/internal/domains/session/service"
	"studiodesk/shared/constant"
	"studiodesk/shared/metrics"
)

const defaultSweepInterval = 6 * time.Hour

// Sweeper periodically removes expired sessions. It runs beside the HTTP
// server and stops when its context is cancelled or Stop is called.
type Sweeper struct {
	sessions sessionService.Session
	interval time.Duration
	otel     otel.Otel

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewSweeper(sessions sessionService.Session, cfg *config.Config, otel otel.Otel) *Sweeper {
	interval := time.Duration(cfg.Session.SweepIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &Sweeper{
		sessions: sessions,
		interval: interval,
		otel:     otel,
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. The first sweep runs immediately.
func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	log.Info().Dur("interval", s.interval).Msg("Session sweeper started")

	go s.run(ctx)
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.once.Do(func() {
		if s.cancel == nil {
			close(s.done)

			return
		}

		s.cancel()
		<-s.done

		log.Info().Msg("Session sweeper stopped")
	})
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.SweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *Sweeper) SweepOnce(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".session.Sweep")
	defer scope.End()

	count, err := s.sessions.Sweep(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("Scheduled session sweep failed")

		return
	}

	metrics.AddSessionsSwept(count)

	if count > 0 {
		log.Info().Int64("removed", count).Msg("Expired sessions removed")
	}
}
