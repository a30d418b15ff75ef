package main

import (
	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/di"
	"studiodesk/helper"
	"studiodesk/shared/logger"
	"studiodesk/shared/metrics"
)

// @title studiodesk API
// @version 1.0
// @description Booking intake, clientele and invoicing for the studio back office.
// @BasePath /
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name id
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.Metrics.Enable {
		metrics.Register()
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
