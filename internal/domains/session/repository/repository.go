package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studiodesk/infras/otel"
	"studiodesk/infras/postgres"
	"studiodesk/internal/domains/session/model"
	"studiodesk/shared/constant"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/logger"
	gRepo "studiodesk/shared/repository"
)

// touchQuery slides the expiry of a live session and reports who owns it.
// Expired rows are left for the sweeper.
const touchQuery = `UPDATE sessions.sessions SET expires_at = $2
WHERE session_id = $1 AND expires_at > $3
RETURNING username`

const deleteExpiredQuery = `DELETE FROM sessions.sessions WHERE expires_at <= $1`

type Session interface {
	Insert(ctx context.Context, model model.Session) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Touch(ctx context.Context, sessionID string, now, expiresAt time.Time) (string, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Session]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Session {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Session](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Touch returns an empty username when the session is unknown or expired.
func (r *repositoryImpl) Touch(ctx context.Context, sessionID string, now, expiresAt time.Time) (string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Touch")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, touchQuery)

	var username string

	err := r.db.Write.GetContext(ctx, &username, touchQuery, sessionID, expiresAt, now)
	if errors.Is(err, sql.ErrNoRows) {
		return constant.Empty, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return constant.Empty, fmt.Errorf("failed to touch session: %w", err)
	}

	return username, nil
}

// DeleteExpired runs on the sweeper pool so cleanup never takes a request
// connection.
func (r *repositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".DeleteExpired")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, deleteExpiredQuery)

	db := r.db.Sweeper
	if db == nil {
		db = r.db.Write
	}

	result, err := db.ExecContext(ctx, deleteExpiredQuery, now)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count expired sessions: %w", err)
	}

	return affected, nil
}
