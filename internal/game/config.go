package game

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/stranded/internal/gamedata"
	"github.com/samdwyer/stranded/internal/sim"
)

// Config holds game configuration options. Environment variables are read
// first and command-line flags override them.
type Config struct {
	// Seed for world generation. Empty or non-numeric means a fresh seed.
	Seed string `env:"STRANDED_SEED"`
	// Size is the world's width and height in tiles.
	Size       int    `env:"STRANDED_WORLD_SIZE"  envDefault:"150"`
	TuningFile string `env:"STRANDED_TUNING_FILE"`
	// Scenario is a Lua script to run headless instead of the terminal game.
	Scenario  string `env:"STRANDED_SCENARIO"`
	FPS       int    `env:"STRANDED_FPS"         envDefault:"30"`
	Telemetry bool   `env:"STRANDED_TELEMETRY"`
	LogFile   string `env:"STRANDED_LOG_FILE"`
}

// ParseConfig parses the environment and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "world seed (random when empty)")
	fs.IntVar(&cfg.Size, "size", cfg.Size, "world size in tiles")
	fs.StringVar(&cfg.TuningFile, "tuning", cfg.TuningFile, "YAML file overriding gameplay tuning")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "run a Lua scenario headless and exit")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second for the terminal game")
	fs.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces over OTLP")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file for interactive sessions")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the game cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Size < 1 {
		errs = append(errs, fmt.Errorf("world size must be at least 1, got %d", c.Size))
	}
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps must be between 1 and 240, got %d", c.FPS))
	}
	return errors.Join(errs...)
}

// LoadTuning returns the default tuning with the YAML file at path laid over
// it. An empty path returns the defaults.
func LoadTuning(path string) (sim.Tuning, error) {
	tuning := sim.DefaultTuning()
	if path != "" {
		if err := gamedata.LoadFile(path, &tuning); err != nil {
			return sim.Tuning{}, fmt.Errorf("load tuning: %w", err)
		}
	}
	if err := tuning.Validate(); err != nil {
		return sim.Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return tuning, nil
}
