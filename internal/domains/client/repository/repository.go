package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"studiodesk/infras/otel"
	"studiodesk/infras/postgres"
	"studiodesk/internal/domains/client/model"
	"studiodesk/shared/constant"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/logger"
	gRepo "studiodesk/shared/repository"
)

var ErrBookingNotFound = errors.New("booking not found")

// upsertFromBookingQuery copies a booking's contact details into a new client.
// When a client with the same email exists, the no-op update keeps its row and
// RETURNING yields its id instead of the new one.
const upsertFromBookingQuery = `INSERT INTO main.clients (client_id, first_name, last_name, phone, email, timezone)
SELECT $1, b.first_name, b.last_name, b.phone, b.email, b.timezone
FROM main.booking_requests b
WHERE b.booking_id = $2
ON CONFLICT (email) DO UPDATE SET email = clients.email
RETURNING client_id`

type Client interface {
	Insert(ctx context.Context, model model.Client) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Client, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Client, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	UpsertFromBookingTx(ctx context.Context, tx *sqlx.Tx, clientID, bookingID string) (string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Client]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Client {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Client](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) UpsertFromBookingTx(ctx context.Context, tx *sqlx.Tx, clientID, bookingID string) (string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpsertFromBookingTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertFromBookingQuery)

	var id string

	err := tx.GetContext(ctx, &id, upsertFromBookingQuery, clientID, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return constant.Empty, ErrBookingNotFound
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return constant.Empty, fmt.Errorf("failed to upsert client from booking: %w", err)
	}

	return id, nil
}
