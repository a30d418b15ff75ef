package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/infras/jwt"
	"studiodesk/infras/otel"
	"studiodesk/internal/domains/auth/model"
	"studiodesk/internal/domains/auth/model/dto"
	"studiodesk/internal/domains/auth/repository"
	sessionService "studiodesk/internal/domains/session/service"
	"studiodesk/shared"
	"studiodesk/shared/constant"
	"studiodesk/shared/failure"
	"studiodesk/shared/password"
	"studiodesk/shared/timezone"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (dto.Identity, error)
}

type serviceImpl struct {
	adminRepo  repository.Admin
	sessions   sessionService.Session
	jwtService jwt.JWT
	cfg        *config.Config
	otel       otel.Otel
}

func New(adminRepo repository.Admin, sessions sessionService.Session, jwt jwt.JWT, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		adminRepo:  adminRepo,
		sessions:   sessions,
		jwtService: jwt,
		cfg:        cfg,
		otel:       otel,
	}
}

// Login checks the password of the configured admin account and opens a
// session. Every credential problem yields the same ErrInvalidCredentials.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username := s.cfg.Admin.Username

	hash, err := s.passwordHash(ctx, username)
	if err != nil {
		return res, err
	}

	if err := password.Verify(req.Password, hash); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("username", username).Msg("stored admin password hash is unusable")
		} else {
			log.Warn().Str("username", username).Msg("login attempt with wrong password")
		}

		return res, failure.ErrInvalidCredentials
	}

	session, err := s.sessions.Start(ctx, username)
	if err != nil {
		return res, err
	}

	token, err := s.jwtService.SignSession(session.SessionID, username, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to sign session")

		return res, fmt.Errorf("failed to sign session: %w", err)
	}

	return dto.LoginResult{Token: token, Username: username, ExpiresAt: session.ExpiresAt}, nil
}

// passwordHash prefers the configured hash and falls back to the stored account.
func (s *serviceImpl) passwordHash(ctx context.Context, username string) (string, error) {
	if s.cfg.Admin.PasswordHash != "" {
		return s.cfg.Admin.PasswordHash, nil
	}

	admin, err := s.adminRepo.Get(ctx, shared.FilterByID(username, model.FieldUsername, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin account")

		return constant.Empty, fmt.Errorf("failed to get admin account: %w", err)
	}

	if admin.Username == "" {
		log.Warn().Str("username", username).Msg("admin account is not provisioned")

		return constant.Empty, failure.ErrInvalidCredentials
	}

	return admin.PasswordHash, nil
}

// Logout destroys the session behind token. A missing or forged token has
// nothing to destroy and is not an error.
func (s *serviceImpl) Logout(ctx context.Context, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if token == "" {
		return nil
	}

	claims, err := s.jwtService.ParseSession(token)
	if err != nil {
		return nil
	}

	return s.sessions.End(ctx, claims.SessionID())
}

func (s *serviceImpl) Authenticate(ctx context.Context, token string) (res dto.Identity, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Authenticate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if token == "" {
		return res, failure.ErrMissingSession
	}

	claims, err := s.jwtService.ParseSession(token)
	if err != nil {
		log.Debug().Err(err).Msg("rejected session cookie")

		return res, failure.ErrMissingSession
	}

	username, err := s.sessions.Resume(ctx, claims.SessionID())
	if err != nil {
		return res, err
	}

	if username != claims.Subject {
		log.Warn().Str("session", claims.SessionID()).Msg("session cookie subject does not match session owner")

		return res, failure.ErrMissingSession
	}

	return dto.Identity{Username: username, SessionID: claims.SessionID()}, nil
}
