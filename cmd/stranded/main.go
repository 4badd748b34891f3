// Package main is the entry point for Stranded.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/stranded/internal/game"
	"github.com/samdwyer/stranded/internal/random"
	"github.com/samdwyer/stranded/internal/scenario"
	"github.com/samdwyer/stranded/internal/sim"
	"github.com/samdwyer/stranded/internal/telemetry"
	"github.com/samdwyer/stranded/internal/world"
)

func main() {
	// Load .env file for local development
	// This makes STRANDED_* and HONEYCOMB_STRANDED_API_KEY available
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	os.Exit(run(cfg))
}

func run(cfg game.Config) int {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Printf("Warning: telemetry setup failed: %v", err)
			logger.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	tuning, err := game.LoadTuning(cfg.TuningFile)
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	seed, _ := random.ResolveSeed(cfg.Seed, logger)

	if cfg.Scenario != "" {
		return runScenario(ctx, cfg, seed, tuning, logger)
	}

	w, err := world.Generate(ctx, seed, cfg.Size, tuning.World)
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	w.LogSummary(logger)

	g, err := game.New(sim.New(w, tuning, sim.Options{}), cfg, logger)
	if err != nil {
		logger.Printf("Failed to initialize game: %v", err)
		return 1
	}
	if err := g.Run(ctx); err != nil {
		logger.Printf("Game error: %v", err)
		return 1
	}
	return 0
}

func runScenario(ctx context.Context, cfg game.Config, seed int32, tuning sim.Tuning, logger *log.Logger) int {
	runner := &scenario.Runner{
		Tuning: tuning,
		Seed:   seed,
		Size:   cfg.Size,
		Logger: logger,
	}
	report, err := runner.RunFile(ctx, cfg.Scenario)
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	fmt.Print(report)
	if !report.Passed() {
		return 1
	}
	return 0
}

// newLogger picks the log destination. The terminal game owns the screen,
// so interactive runs log to a file or nowhere; scenarios log to stderr.
func newLogger(cfg game.Config) (*log.Logger, func(), error) {
	const flags = log.LstdFlags | log.Lmsgprefix
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return log.New(f, "stranded: ", flags), func() { f.Close() }, nil
	case cfg.Scenario != "":
		return log.New(os.Stderr, "stranded: ", flags), func() {}, nil
	default:
		return log.New(io.Discard, "", 0), func() {}, nil
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the
	// header is built here.
	apiKey := os.Getenv("HONEYCOMB_STRANDED_API_KEY")
	dataset := os.Getenv("HONEYCOMB_STRANDED_DATASET")
	if dataset == "" {
		dataset = "stranded"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
