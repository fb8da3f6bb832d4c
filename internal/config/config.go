package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultArraySize = 10
	DefaultSpeed     = 6
	DefaultMode      = "direct"
	DefaultDataDir   = "runs"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultTheme     = "default"
	DefaultAddr      = ":8080"

	MinSpeed = 1
	MaxSpeed = 10
)

var ErrInvalidSpeed = errors.New("config: speed must be between 1 and 10")

type Config struct {
	ArraySize int    `yaml:"array_size" validate:"min=1,max=20"`
	Speed     int    `yaml:"speed" validate:"min=1,max=10"`
	Mode      string `yaml:"mode" validate:"oneof=direct step"`
	Seed      int64  `yaml:"seed"`
	Preset    string `yaml:"preset,omitempty"`
	DataDir   string `yaml:"data_dir" validate:"required"`
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`
	Theme     string `yaml:"theme"`
	Addr      string `yaml:"addr" validate:"required"`
}

func DefaultConfig() *Config {
	return &Config{
		ArraySize: DefaultArraySize,
		Speed:     DefaultSpeed,
		Mode:      DefaultMode,
		DataDir:   DefaultDataDir,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Theme:     DefaultTheme,
		Addr:      DefaultAddr,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Interval is the animation tick interval for the configured speed.
func (c *Config) Interval() time.Duration {
	d, err := IntervalForSpeed(c.Speed)
	if err != nil {
		d, _ = IntervalForSpeed(DefaultSpeed)
	}
	return d
}

// IntervalForSpeed maps speed 1..10 to 1000ms..100ms.
func IntervalForSpeed(speed int) (time.Duration, error) {
	if speed < MinSpeed || speed > MaxSpeed {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSpeed, speed)
	}
	return time.Duration(1100-speed*100) * time.Millisecond, nil
}

// ClampSpeed keeps speed adjustments from the UI inside the valid range.
func ClampSpeed(speed int) int {
	return max(MinSpeed, min(MaxSpeed, speed))
}
