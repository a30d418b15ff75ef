//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"studiodesk/config"
	"studiodesk/infras/jwt"
	"studiodesk/infras/kafka"
	"studiodesk/infras/otel"
	"studiodesk/infras/postgres"
	"studiodesk/infras/redis"
	"studiodesk/infras/s3"
	"studiodesk/infras/turnstile"
	authRepository "studiodesk/internal/domains/auth/repository"
	authService "studiodesk/internal/domains/auth/service"
	bookingRepository "studiodesk/internal/domains/booking/repository"
	bookingService "studiodesk/internal/domains/booking/service"
	clientRepository "studiodesk/internal/domains/client/repository"
	clientService "studiodesk/internal/domains/client/service"
	galleryService "studiodesk/internal/domains/gallery/service"
	idRepository "studiodesk/internal/domains/identifier/repository"
	idService "studiodesk/internal/domains/identifier/service"
	invoiceRepository "studiodesk/internal/domains/invoice/repository"
	invoiceService "studiodesk/internal/domains/invoice/service"
	sessionRepository "studiodesk/internal/domains/session/repository"
	sessionService "studiodesk/internal/domains/session/service"
	"studiodesk/internal/events"
	authHandler "studiodesk/internal/handlers/auth"
	bookingHandler "studiodesk/internal/handlers/booking"
	clienteleHandler "studiodesk/internal/handlers/clientele"
	galleryHandler "studiodesk/internal/handlers/gallery"
	invoicingHandler "studiodesk/internal/handlers/invoicing"
	"studiodesk/internal/worker"
	"studiodesk/permissions"
	"studiodesk/shared/cache"
	"studiodesk/transport/http"
	"studiodesk/transport/http/middleware"
	"studiodesk/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	turnstile.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.New,
)

var identifierDomain = wire.NewSet(
	idRepository.New,
	idService.New,
)

var clientDomain = wire.NewSet(
	clientRepository.New,
	clientService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var invoiceDomain = wire.NewSet(
	invoiceRepository.New,
	invoiceRepository.NewItem,
	invoiceService.New,
)

var sessionDomain = wire.NewSet(
	sessionRepository.New,
	sessionService.New,
	worker.NewSweeper,
)

var authDomain = wire.NewSet(
	authRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	identifierDomain,
	clientDomain,
	bookingDomain,
	invoiceDomain,
	sessionDomain,
	authDomain,
	galleryService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	clienteleHandler.New,
	invoicingHandler.New,
	galleryHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
