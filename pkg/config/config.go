package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LANDTRACK_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"LANDTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LANDTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path        string        `envconfig:"LANDTRACK_DB_PATH" default:"data/landtrack.db"`
	BusyTimeout time.Duration `envconfig:"LANDTRACK_DB_BUSY_TIMEOUT" default:"5s"`
}

// DSN builds the sqlite connection string, including the busy timeout so a
// second writer waits instead of failing immediately.
func (db DBConfig) DSN() string {
	q := url.Values{}
	if db.BusyTimeout > 0 {
		q.Set("_busy_timeout", fmt.Sprintf("%d", db.BusyTimeout.Milliseconds()))
	}
	if encoded := q.Encode(); encoded != "" {
		return fmt.Sprintf("%s?%s", db.Path, encoded)
	}
	return db.Path
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LANDTRACK_AUTO_MIGRATE" default:"false"`
}
