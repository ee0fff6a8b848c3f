package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/scottlepich-lz/enrichment-test-suite/internal/config"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/enrichmock"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.ServiceEnvironment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	omit := cfg.MockOmitFieldList()

	log.Info("Starting mock enrichment service",
		zap.String("environment", cfg.ServiceEnvironment),
		zap.String("port", cfg.MockPort),
		zap.Float64("cogs_ratio", cfg.MockCOGSRatio),
		zap.Strings("omit_fields", omit))

	h := enrichmock.NewHandler(enrichmock.Options{
		COGSRatio:  cfg.MockCOGSRatio,
		OmitFields: omit,
	}, log)

	addr := fmt.Sprintf(":%s", cfg.MockPort)
	log.Info("Mock enrichment server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start mock enrichment server", zap.Error(err))
	}
}
