package game

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/samdwyer/stranded/internal/world"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STRANDED_SEED", "STRANDED_WORLD_SIZE", "STRANDED_TUNING_FILE", "STRANDED_SCENARIO",
		"STRANDED_FPS", "STRANDED_TELEMETRY", "STRANDED_LOG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	clearEnv(t)
	fs := flag.NewFlagSet("stranded", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Size != 150 {
		t.Errorf("Size = %d, want 150", cfg.Size)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.FPS)
	}
	if cfg.Seed != "" || cfg.Scenario != "" || cfg.Telemetry {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRANDED_SEED", "12345")
	t.Setenv("STRANDED_WORLD_SIZE", "80")
	t.Setenv("STRANDED_TELEMETRY", "true")

	fs := flag.NewFlagSet("stranded", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-size", "64", "-scenario", "rescue.lua"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Seed != "12345" {
		t.Errorf("Seed = %q, want env value", cfg.Seed)
	}
	if cfg.Size != 64 {
		t.Errorf("Size = %d, want flag to override env", cfg.Size)
	}
	if !cfg.Telemetry {
		t.Error("Telemetry should come from env")
	}
	if cfg.Scenario != "rescue.lua" {
		t.Errorf("Scenario = %q, want rescue.lua", cfg.Scenario)
	}
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero size", []string{"-size", "0"}},
		{"zero fps", []string{"-fps", "0"}},
		{"huge fps", []string{"-fps", "1000"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		clearEnv(t)
		fs := flag.NewFlagSet("stranded", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		if _, err := ParseConfig(fs, tt.args); err == nil {
			t.Errorf("%s: ParseConfig() = nil error", tt.name)
		}
	}
}

func TestParseConfigBadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRANDED_FPS", "fast")
	fs := flag.NewFlagSet("stranded", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Error("ParseConfig() with a non-numeric STRANDED_FPS should fail")
	}
}

func TestLoadTuningDefaults(t *testing.T) {
	tuning, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning(\"\") error: %v", err)
	}
	if tuning.Rescue.Duration != 20 {
		t.Errorf("Rescue.Duration = %v, want 20", tuning.Rescue.Duration)
	}
}

func TestLoadTuningOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := `
player:
  speed: 300
rescue:
  duration: 45
  cost:
    scrap: 0
world:
  terrain:
    noise_amplitude: 0.2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning() error: %v", err)
	}
	if tuning.Player.Speed != 300 {
		t.Errorf("Player.Speed = %v, want 300", tuning.Player.Speed)
	}
	if tuning.Player.PickupRadius != 22 {
		t.Errorf("Player.PickupRadius = %v, want default 22", tuning.Player.PickupRadius)
	}
	if tuning.Rescue.Duration != 45 {
		t.Errorf("Rescue.Duration = %v, want 45", tuning.Rescue.Duration)
	}
	if tuning.Rescue.Cost[world.KindScrap] != 0 || tuning.Rescue.Cost[world.KindOil] != 3 {
		t.Errorf("Rescue.Cost = %v, want scrap overridden and oil kept", tuning.Rescue.Cost)
	}
	if tuning.World.Terrain.NoiseAmplitude != 0.2 {
		t.Errorf("NoiseAmplitude = %v, want 0.2", tuning.World.Terrain.NoiseAmplitude)
	}
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("max_step: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Error("LoadTuning() with a negative max_step should fail")
	}
}

func TestLoadTuningRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"long step", "max_step: 30\n"},
		{"no peaks", "world:\n  terrain:\n    peak_count: 0\n"},
		{"many peaks", "world:\n  terrain:\n    peak_count: 11\n"},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadTuning(path); err == nil {
			t.Errorf("%s: LoadTuning() = nil error, want rejection", tt.name)
		}
	}
}
