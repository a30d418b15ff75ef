package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"studiodesk/infras/otel"
	"studiodesk/infras/postgres"
	"studiodesk/internal/domains/booking/model"
	"studiodesk/shared/constant"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/logger"
	gRepo "studiodesk/shared/repository"
)

const setCompletedQuery = `UPDATE main.booking_requests SET completed = $1 WHERE booking_id = $2`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	SetCompleted(ctx context.Context, id string, completed bool) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SetCompleted reports false when no booking has the id. Postgres counts a
// matched row even when the flag already had the value.
func (r *repositoryImpl) SetCompleted(ctx context.Context, id string, completed bool) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".SetCompleted")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, setCompletedQuery)

	result, err := r.db.Write.ExecContext(ctx, setCompletedQuery, completed, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to set booking completion: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
