package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/infras/otel"
	"studiodesk/internal/domains/session/model"
	"studiodesk/internal/domains/session/repository"
	"studiodesk/shared"
	"studiodesk/shared/constant"
	"studiodesk/shared/failure"
	"studiodesk/shared/timezone"
)

// Session manages server-side login sessions with a sliding idle timeout.
type Session interface {
	Start(ctx context.Context, username string) (model.Session, error)
	Resume(ctx context.Context, sessionID string) (string, error)
	End(ctx context.Context, sessionID string) error
	Sweep(ctx context.Context) (int64, error)
}

type serviceImpl struct {
	repo repository.Session
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Session, cfg *config.Config, otel otel.Otel) Session {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) idleTimeout() time.Duration {
	return time.Duration(s.cfg.Session.IdleTimeoutMinutes) * time.Minute
}

func (s *serviceImpl) Start(ctx context.Context, username string) (res model.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Start")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = model.Session{
		SessionID: uuid.NewString(),
		Username:  username,
		ExpiresAt: timezone.Now().Add(s.idleTimeout()),
	}

	if err = s.repo.Insert(ctx, res); err != nil {
		log.Error().Err(err).Msg("failed to start session")

		return model.Session{}, fmt.Errorf("failed to start session: %w", err)
	}

	return res, nil
}

// Resume extends a live session and returns its username. Unknown and
// expired sessions are reported as ErrMissingSession.
func (s *serviceImpl) Resume(ctx context.Context, sessionID string) (username string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Resume")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()

	username, err = s.repo.Touch(ctx, sessionID, now, now.Add(s.idleTimeout()))
	if err != nil {
		log.Error().Err(err).Msg("failed to resume session")

		return constant.Empty, fmt.Errorf("failed to resume session: %w", err)
	}

	if username == "" {
		return constant.Empty, failure.ErrMissingSession
	}

	return username, nil
}

func (s *serviceImpl) End(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.End")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, shared.FilterByID(sessionID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to end session")

		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

func (s *serviceImpl) Sweep(ctx context.Context) (count int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Sweep")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	count, err = s.repo.DeleteExpired(ctx, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to sweep expired sessions")

		return 0, fmt.Errorf("failed to sweep expired sessions: %w", err)
	}

	return count, nil
}
