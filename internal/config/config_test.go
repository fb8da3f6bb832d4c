package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "direct" {
		t.Errorf("expected mode direct, got %s", cfg.Mode)
	}
	if cfg.Speed != 6 {
		t.Errorf("expected speed 6, got %d", cfg.Speed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.Interval() != 500*time.Millisecond {
		t.Errorf("expected 500ms interval, got %v", cfg.Interval())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"size too small", func(c *Config) { c.ArraySize = 0 }},
		{"size too large", func(c *Config) { c.ArraySize = 21 }},
		{"speed too low", func(c *Config) { c.Speed = 0 }},
		{"speed too high", func(c *Config) { c.Speed = 11 }},
		{"bad mode", func(c *Config) { c.Mode = "fast" }},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
		{"no data dir", func(c *Config) { c.DataDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrayviz.yaml")

	cfg := DefaultConfig()
	cfg.ArraySize = 15
	cfg.Mode = "step"
	cfg.Seed = 7
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	cfg := DefaultConfig()
	cfg.Speed = 42
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid speed")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIntervalForSpeed(t *testing.T) {
	tests := []struct {
		speed int
		want  time.Duration
	}{
		{1, 1000 * time.Millisecond},
		{6, 500 * time.Millisecond},
		{10, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		got, err := IntervalForSpeed(tt.speed)
		if err != nil || got != tt.want {
			t.Errorf("speed %d: got %v, %v; want %v", tt.speed, got, err, tt.want)
		}
	}

	for _, speed := range []int{0, 11, -3} {
		if _, err := IntervalForSpeed(speed); !errors.Is(err, ErrInvalidSpeed) {
			t.Errorf("speed %d: expected ErrInvalidSpeed, got %v", speed, err)
		}
	}
}

func TestClampSpeed(t *testing.T) {
	if ClampSpeed(0) != 1 || ClampSpeed(11) != 10 || ClampSpeed(5) != 5 {
		t.Error("clamp out of range")
	}
}

func TestGetPreset(t *testing.T) {
	a := GetPreset("scenario")
	if a == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(a) != 4 || a[0] != 5 {
		t.Errorf("unexpected scenario preset %v", a)
	}

	a[0] = 99
	if Presets["scenario"][0] != 5 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}
