package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/schrosk/internal/model"
	"github.com/sandeepkv93/schrosk/internal/storage"
)

const DefaultPath = "schrosk.yaml"

type Config struct {
	StoreBackend    string        `yaml:"storeBackend" env:"SCHROSK_STORE_BACKEND"`
	StorePath       string        `yaml:"storePath" env:"SCHROSK_STORE_PATH"`
	CollapseDelay   time.Duration `yaml:"collapseDelay" env:"SCHROSK_COLLAPSE_DELAY"`
	Animations      bool          `yaml:"animations" env:"SCHROSK_ANIMATIONS"`
	AnimationFPS    int           `yaml:"animationFPS" env:"SCHROSK_ANIMATION_FPS"`
	SchedulerBuffer int           `yaml:"schedulerBuffer" env:"SCHROSK_SCHEDULER_BUFFER"`
	LogFile         string        `yaml:"logFile" env:"SCHROSK_LOG_FILE"`
	LogLevel        string        `yaml:"logLevel" env:"SCHROSK_LOG_LEVEL"`
}

func Default() Config {
	return Config{
		StoreBackend:    storage.BackendSQLite,
		StorePath:       "schrosk.db",
		CollapseDelay:   model.DefaultCollapseDelay,
		Animations:      true,
		AnimationFPS:    20,
		SchedulerBuffer: 64,
		LogLevel:        "info",
	}
}

// Load starts from Default, applies the YAML file at path when it exists and
// then the SCHROSK_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !storage.IsKnownBackend(c.StoreBackend) {
		return fmt.Errorf("config: %w: %q", storage.ErrUnknownBackend, c.StoreBackend)
	}
	if c.StoreBackend != storage.BackendMemory && strings.TrimSpace(c.StorePath) == "" {
		return errors.New("config: storePath is required")
	}
	if c.CollapseDelay <= 0 {
		return fmt.Errorf("config: collapseDelay must be positive, got %s", c.CollapseDelay)
	}
	if c.AnimationFPS <= 0 {
		return fmt.Errorf("config: animationFPS must be positive, got %d", c.AnimationFPS)
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("config: schedulerBuffer must be positive, got %d", c.SchedulerBuffer)
	}
	return nil
}

// AnimationInterval is the tick period for the given frame rate.
func (c Config) AnimationInterval() time.Duration {
	if c.AnimationFPS <= 0 {
		return time.Second / 20
	}
	return time.Second / time.Duration(c.AnimationFPS)
}
