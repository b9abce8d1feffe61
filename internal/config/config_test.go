package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_ProviderConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NFLVERSE_BASE_URL", "http://localhost:8091")
	t.Setenv("NFLVERSE_TIMEOUT", "45s")
	t.Setenv("NFLVERSE_MAX_RETRIES", "5")
	t.Setenv("NFLVERSE_MAX_WORKERS", "8")
	t.Setenv("NFLVERSE_CIRCUIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.NFLVerseBaseURL != "http://localhost:8091" {
		t.Fatalf("unexpected NFLVerseBaseURL: %q", cfg.NFLVerseBaseURL)
	}
	if cfg.NFLVerseTimeout != 45*time.Second {
		t.Fatalf("unexpected NFLVerseTimeout: %s", cfg.NFLVerseTimeout)
	}
	if cfg.NFLVerseMaxRetries != 5 {
		t.Fatalf("unexpected NFLVerseMaxRetries: %d", cfg.NFLVerseMaxRetries)
	}
	if cfg.NFLVerseMaxWorkers != 8 {
		t.Fatalf("unexpected NFLVerseMaxWorkers: %d", cfg.NFLVerseMaxWorkers)
	}
	if cfg.NFLVerseCircuitEnabled {
		t.Fatalf("expected NFLVerseCircuitEnabled=false")
	}
}

func TestLoad_SeasonValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GRIDIRON_DEFAULT_SEASON", "1990")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for a season before 1999")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GRIDIRON_DEFAULT_SEASON", "2025")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "gridiron" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.OutputDir != "reports" {
		t.Fatalf("unexpected OutputDir: %q", cfg.OutputDir)
	}
	if cfg.DefaultSeason != 2025 {
		t.Fatalf("unexpected DefaultSeason: %d", cfg.DefaultSeason)
	}
	if cfg.PprofAddr != "localhost:6060" {
		t.Fatalf("unexpected PprofAddr: %q", cfg.PprofAddr)
	}
}

func TestCurrentSeason(t *testing.T) {
	t.Parallel()

	september := time.Date(2025, time.September, 7, 0, 0, 0, 0, time.UTC)
	if got := currentSeason(september); got != 2025 {
		t.Fatalf("september: got %d, want 2025", got)
	}
	january := time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC)
	if got := currentSeason(january); got != 2025 {
		t.Fatalf("january playoffs: got %d, want 2025", got)
	}
}
