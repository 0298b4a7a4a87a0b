package main

import (
	"staffops/internal/app"
	"staffops/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	logger.Info("starting outbox relay worker")
	if err := app.RunWorker(); err != nil {
		logger.Fatal("outbox relay worker failed", zap.Error(err))
	}
}
