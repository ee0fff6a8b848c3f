package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scottlepich-lz/enrichment-test-suite/internal/config"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/enrichment"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/loader"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/logger"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/reporter"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/runner"
	"github.com/scottlepich-lz/enrichment-test-suite/internal/writer"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
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

	log = log.With(zap.String("run_id", uuid.NewString()))

	start := time.Now()
	outputPath := cfg.OutputPath(start)

	log.Info("Starting enrichment validation",
		zap.String("environment", cfg.ServiceEnvironment),
		zap.String("endpoint", cfg.EnrichEndpoint),
		zap.String("input", cfg.InputCSV),
		zap.String("output", outputPath),
		zap.Duration("request_timeout", cfg.RequestTimeout()))

	// Open input and load events. Either failing here aborts before any
	// event is processed.
	input, err := os.Open(cfg.InputCSV)
	if err != nil {
		log.Error("Failed to open input file", zap.Error(err))
		return 1
	}
	defer func() {
		if err := input.Close(); err != nil {
			log.Error("Failed to close input file", zap.Error(err))
		}
	}()

	records, skipped, err := loader.NewLoader(log).Load(input)
	if err != nil {
		log.Error("Failed to load input events", zap.Error(err))
		return 1
	}

	out, err := writer.NewResultWriter(outputPath, log)
	if err != nil {
		log.Error("Failed to open output file", zap.Error(err))
		return 1
	}

	// Cancel between events on SIGINT/SIGTERM; completed rows are already
	// flushed, so an interrupt loses at most the in-flight event.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Warn("Received signal, stopping after current event",
			zap.String("signal", sig.String()))
		cancel()
	}()

	stats := reporter.NewRunStats(start)
	stats.Skipped = skipped
	rep := reporter.NewReporter(cfg.ProgressInterval, os.Stdout, log)

	client := enrichment.NewClient(cfg.EnrichEndpoint, cfg.RequestTimeout(), log)
	r := runner.NewRunner(client, out, rep, log)

	runErr := r.Run(ctx, records, stats)
	interrupted := errors.Is(runErr, context.Canceled)

	if closeErr := out.Close(); closeErr != nil {
		log.Error("Failed to close output file", zap.Error(closeErr))
	}

	if runErr != nil && !interrupted {
		log.Error("Validation run aborted", zap.Error(runErr))
		return 1
	}

	rep.Summary(stats, outputPath, interrupted)

	return exitCode(stats, interrupted)
}

// exitCode maps the run outcome onto the process exit status. The verdict in
// the summary is strict, but operationally a run with at least a 95% pass
// rate is treated as a success.
func exitCode(stats *reporter.RunStats, interrupted bool) int {
	if interrupted {
		return 1
	}
	if stats.Failed == 0 {
		return 0
	}
	if stats.PassRate() >= 95 {
		return 0
	}
	return 1
}
