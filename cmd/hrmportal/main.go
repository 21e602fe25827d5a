package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/you/hrmportal/internal/app"
	"github.com/you/hrmportal/internal/config"
	"github.com/you/hrmportal/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.Init(logging.ConfigFromEnv())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := app.Run(cfg, logger); err != nil {
		logger.Fatal("app: " + err.Error())
	}
}
