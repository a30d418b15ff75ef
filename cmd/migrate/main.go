package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/helper"
	"studiodesk/shared/logger"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	direction := os.Args[1]

	switch direction {
	case helper.ActionUp, helper.ActionDown, helper.ActionDrop, helper.ActionStepUp:
		if err := helper.Runner(cfg, direction); err != nil {
			log.Fatal().Err(err).Str("direction", direction).Msg("Migration failed")
		}
	default:
		log.Fatal().Str("direction", direction).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}
}
