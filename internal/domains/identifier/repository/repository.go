package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"studiodesk/infras/otel"
	"studiodesk/infras/postgres"
	"studiodesk/internal/domains/identifier/model"
	"studiodesk/shared/constant"
	"studiodesk/shared/logger"
)

type Identifier interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Identifier {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// Exists reads from the write pool so a row committed a moment ago is seen.
func (r *repositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Exists")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, model.ExistsQuery)

	var exist bool

	if err := r.db.Write.GetContext(ctx, &exist, model.ExistsQuery, id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check identifier: %w", err)
	}

	return exist, nil
}
