package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/DOOMSDAY101/MultiQuote-backend/internal/app"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/config"
	"github.com/DOOMSDAY101/MultiQuote-backend/internal/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Errorw("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		log.Errorw("server exited", "error", err)
		os.Exit(1)
	}
}
