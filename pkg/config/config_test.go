package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}

	if cfg.DB.Path != "testdata/landtrack.db" {
		t.Fatalf("unexpected DB path: %q", cfg.DB.Path)
	}

	if got := cfg.DB.BusyTimeout; got != 2*time.Second {
		t.Fatalf("expected busy timeout 2s, got %v", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestDBConfigDSN(t *testing.T) {
	cfg := DBConfig{Path: "data/landtrack.db", BusyTimeout: 5 * time.Second}
	if got := cfg.DSN(); got != "data/landtrack.db?_busy_timeout=5000" {
		t.Fatalf("unexpected DSN %q", got)
	}

	bare := DBConfig{Path: "data/landtrack.db"}
	if got := bare.DSN(); got != "data/landtrack.db" {
		t.Fatalf("expected bare path when no busy timeout, got %q", got)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvDBPath, "testdata/landtrack.db")
	t.Setenv(EnvDBBusyTimeout, "2s")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
