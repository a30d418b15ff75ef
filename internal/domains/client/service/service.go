package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/infras/otel"
	"studiodesk/internal/domains/client/model"
	"studiodesk/internal/domains/client/model/dto"
	"studiodesk/internal/domains/client/repository"
	idService "studiodesk/internal/domains/identifier/service"
	"studiodesk/shared"
	"studiodesk/shared/cache"
	"studiodesk/shared/constant"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/failure"
	gRepo "studiodesk/shared/repository"
)

const (
	cacheViewClient = "client:view"

	errEmailTaken = "a client with this email already exists"
)

// Client resolves, creates and edits client records. The *Tx methods join a
// transaction owned by the caller.
type Client interface {
	Create(ctx context.Context, req dto.CreateClientRequest) (string, error)
	Edit(ctx context.Context, id string, req dto.EditClientRequest) error
	Find(ctx context.Context, query dto.FindClientQuery) ([]dto.FoundClient, error)
	FindFirstID(ctx context.Context, query dto.FindClientQuery) (string, error)
	View(ctx context.Context, id string) (dto.ClientResponse, error)
	Exists(ctx context.Context, id string) (bool, error)
	FindOrCreate(ctx context.Context, firstName, lastName string) (string, error)
	CreateFromBookingTx(ctx context.Context, tx *sqlx.Tx, bookingID string) (string, error)
	UpdateAddressTx(ctx context.Context, tx *sqlx.Tx, clientID string, address dto.Address) error
	Forget(ctx context.Context, id string)
}

type serviceImpl struct {
	repo      repository.Client
	allocator idService.Allocator
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Client, allocator idService.Allocator, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Client {
	return &serviceImpl{
		repo:      repo,
		allocator: allocator,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateClientRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id, err = idService.WithID(ctx, s.allocator, func(id string) error {
		return s.repo.Insert(ctx, req.ToModel(id))
	})
	if err != nil {
		if gRepo.IsUniqueViolation(err) {
			return constant.Empty, failure.Conflict(errEmailTaken) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create client")

		return constant.Empty, fmt.Errorf("failed to create client: %w", err)
	}

	return id, nil
}

func (s *serviceImpl) Edit(ctx context.Context, id string, req dto.EditClientRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Edit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if client exists")

		return fmt.Errorf("failed to check if client exists: %w", err)
	}

	if !exist {
		return failure.NotFound("client not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, req.ToFields(), filter); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict(errEmailTaken) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update client")

		return fmt.Errorf("failed to update client: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Find(ctx context.Context, query dto.FindClientQuery) (res []dto.FoundClient, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Find")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := query.ToFilter()
	if filter.IsEmpty() {
		return []dto.FoundClient{}, nil
	}

	models, err := s.repo.GetAll(ctx, query.Paging.Or(gDto.QueryParams{SortBy: model.FieldLastName, SortDir: gDto.SortDirAsc}), filter, model.FieldID, model.FieldFirstName, model.FieldLastName)
	if err != nil {
		log.Error().Err(err).Msg("failed to find clients")

		return nil, fmt.Errorf("failed to find clients: %w", err)
	}

	return dto.FoundClientsFromModels(models), nil
}

// FindFirstID returns the id of the oldest client matching query, or "" when
// nothing matches or no predicate is set.
func (s *serviceImpl) FindFirstID(ctx context.Context, query dto.FindClientQuery) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.FindFirstID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := query.ToFilter()
	if filter.IsEmpty() {
		return constant.Empty, nil
	}

	oldest := gDto.QueryParams{Limit: 1, SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	found, err := s.repo.GetAll(ctx, oldest, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve client")

		return constant.Empty, fmt.Errorf("failed to resolve client: %w", err)
	}

	if len(found) == 0 {
		return constant.Empty, nil
	}

	return found[0].ClientID, nil
}

func (s *serviceImpl) View(ctx context.Context, id string) (res dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.View")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheViewClient, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for client")

		return res, nil
	}

	client, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get client")

		return res, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ClientID == "" {
		return res, failure.NotFound("client not found") // nolint:wrapcheck
	}

	res.FromModel(client)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save client to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Exists(ctx context.Context, id string) (exist bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.Exists")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err = s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if client exists")

		return false, fmt.Errorf("failed to check if client exists: %w", err)
	}

	return exist, nil
}

// FindOrCreate matches first and last name exactly and case-sensitively.
// Without a match a client with only a name is created.
func (s *serviceImpl) FindOrCreate(ctx context.Context, firstName, lastName string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.FindOrCreate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.NewAndGroup()
	filter.
		Add(true, gDto.Filter{Field: model.FieldFirstName, Value: firstName, Operator: gDto.FilterOperatorEq, Table: model.TableName}).
		Add(true, gDto.Filter{Field: model.FieldLastName, Value: lastName, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	existing, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up client by name")

		return constant.Empty, fmt.Errorf("failed to look up client by name: %w", err)
	}

	if existing.ClientID != "" {
		return existing.ClientID, nil
	}

	id, err = idService.WithID(ctx, s.allocator, func(id string) error {
		return s.repo.Insert(ctx, model.Client{ClientID: id, FirstName: firstName, LastName: lastName})
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create client")

		return constant.Empty, fmt.Errorf("failed to create client: %w", err)
	}

	return id, nil
}

// CreateFromBookingTx derives a client from a booking. A client already
// holding the booking's email is reused, so repeated calls return one id.
// A primary key collision aborts the caller's transaction; the caller retries.
func (s *serviceImpl) CreateFromBookingTx(ctx context.Context, tx *sqlx.Tx, bookingID string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.CreateFromBookingTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	newID, err := s.allocator.Generate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to allocate client id")

		return constant.Empty, fmt.Errorf("failed to allocate client id: %w", err)
	}

	id, err = s.repo.UpsertFromBookingTx(ctx, tx, newID, bookingID)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return constant.Empty, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create client from booking")

		return constant.Empty, fmt.Errorf("failed to create client from booking: %w", err)
	}

	return id, nil
}

func (s *serviceImpl) UpdateAddressTx(ctx context.Context, tx *sqlx.Tx, clientID string, address dto.Address) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".client.UpdateAddressTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.repo.UpdateTx(ctx, tx, address.ToFields(), shared.FilterByID(clientID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update client address")

		return fmt.Errorf("failed to update client address: %w", err)
	}

	return nil
}

// Forget drops the cached view of a client. Callers that changed the client
// inside their own transaction call it once the transaction has committed.
func (s *serviceImpl) Forget(ctx context.Context, id string) {
	s.invalidate(ctx, id)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheViewClient, id))
}
