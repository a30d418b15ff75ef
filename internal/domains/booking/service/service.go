package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/infras/otel"
	"studiodesk/infras/turnstile"
	"studiodesk/internal/domains/booking/model"
	"studiodesk/internal/domains/booking/model/dto"
	"studiodesk/internal/domains/booking/repository"
	idService "studiodesk/internal/domains/identifier/service"
	"studiodesk/internal/events"
	"studiodesk/shared"
	"studiodesk/shared/cache"
	"studiodesk/shared/constant"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/failure"
	"studiodesk/shared/metrics"
)

const (
	cacheViewBooking    = "booking:view"
	cachePendingBooking = "booking:pending"

	errBotVerification = "bot verification failed"
	reasonVerifierDown = "verifier-unavailable"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, remoteIP string) (string, error)
	ListPending(ctx context.Context) ([]dto.BookingResponse, error)
	Find(ctx context.Context, query dto.FindBookingQuery) ([]dto.FoundBooking, error)
	View(ctx context.Context, id string) (dto.BookingResponse, error)
	ChangeCompletion(ctx context.Context, id string, completed bool) error
}

type serviceImpl struct {
	repo      repository.Booking
	allocator idService.Allocator
	verifier  turnstile.Verifier
	events    events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	allocator idService.Allocator,
	verifier turnstile.Verifier,
	events events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		allocator: allocator,
		verifier:  verifier,
		events:    events,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create checks the bot token before touching storage; a rejected token
// leaves no trace of the attempt.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, remoteIP string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.verify(ctx, req.TurnstileToken, remoteIP); err != nil {
		return constant.Empty, err
	}

	id, err = idService.WithID(ctx, s.allocator, func(id string) error {
		return s.repo.Insert(ctx, req.ToModel(id))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return constant.Empty, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.IncBookingCreated()

	s.events.Booking(ctx, events.TypeBookingCreated, id, map[string]any{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"categories": req.CategoryValues(),
	})

	shared.InvalidateCaches(ctx, s.cache, cachePendingBooking)

	return id, nil
}

func (s *serviceImpl) verify(ctx context.Context, token, remoteIP string) error {
	result, err := s.verifier.Verify(ctx, turnstile.Request{
		Token:            token,
		RemoteIP:         remoteIP,
		ExpectedAction:   s.cfg.Turnstile.ExpectedAction,
		ExpectedHostname: s.cfg.Turnstile.ExpectedHostname,
	})
	if err != nil {
		metrics.IncBotVerification(metrics.BotResultError)
		log.Error().Err(err).Msg("failed to verify bot token")

		return failure.Unauthorized(errBotVerification, reasonVerifierDown) // nolint:wrapcheck
	}

	if !result.Success {
		metrics.IncBotVerification(metrics.BotResultRejected)
		log.Warn().Strs("codes", result.ErrorCodes).Str("ip", remoteIP).Msg("bot token rejected")

		return failure.Unauthorized(errBotVerification, result.ErrorCodes...) // nolint:wrapcheck
	}

	metrics.IncBotVerification(metrics.BotResultPassed)

	return nil
}

func (s *serviceImpl) ListPending(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListPending")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cachePendingBooking, &res); err == nil {
		log.Debug().Str("cacheKey", cachePendingBooking).Msg("cache hit for pending bookings")

		return res, nil
	}

	filter := gDto.NewAndGroup()
	filter.Add(true, gDto.Filter{Field: model.FieldCompleted, Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	params := gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list pending bookings")

		return nil, fmt.Errorf("failed to list pending bookings: %w", err)
	}

	res = dto.BookingsFromModels(bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cachePendingBooking, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pending bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Find(ctx context.Context, query dto.FindBookingQuery) (res []dto.FoundBooking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Find")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := query.ToFilter()
	if err != nil {
		return nil, err
	}

	if filter.IsEmpty() {
		return []dto.FoundBooking{}, nil
	}

	bookings, err := s.repo.GetAll(ctx, query.Paging.Or(gDto.QueryParams{SortBy: model.FieldBookingNumber, SortDir: gDto.SortDirAsc}), filter, model.FieldBookingNumber, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to find bookings")

		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}

	return dto.FoundBookingsFromModels(bookings), nil
}

func (s *serviceImpl) View(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.View")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheViewBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.BookingID == "" {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// ChangeCompletion sets the completed flag to the given value; setting the
// current value again is not an error.
func (s *serviceImpl) ChangeCompletion(ctx context.Context, id string, completed bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ChangeCompletion")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	found, err := s.repo.SetCompleted(ctx, id, completed)
	if err != nil {
		log.Error().Err(err).Msg("failed to change booking completion")

		return fmt.Errorf("failed to change booking completion: %w", err)
	}

	if !found {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	shared.InvalidateCaches(ctx, s.cache, cachePendingBooking, shared.BuildCacheKey(cacheViewBooking, id))

	return nil
}
