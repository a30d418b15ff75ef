package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"studiodesk/infras/otel"
	"studiodesk/infras/postgres"
	"studiodesk/internal/domains/auth/model"
	gDto "studiodesk/shared/dto"
	gRepo "studiodesk/shared/repository"
)

type Admin interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AdminUser, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.AdminUser]
}

func New(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AdminUser](model.EntityName, model.TableName, model.FieldUsername, db, otel),
	}
}
