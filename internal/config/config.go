package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/porchcrew/gridiron/internal/platform/logging"
)

// Config stores runtime configuration for the pipeline.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	DefaultSeason int
	OutputDir     string

	NFLVerseBaseURL               string
	NFLVerseTimeout               time.Duration
	NFLVerseMaxRetries            int
	NFLVerseMaxWorkers            int
	NFLVerseCircuitEnabled        bool
	NFLVerseCircuitFailureCount   int
	NFLVerseCircuitOpenTimeout    time.Duration
	NFLVerseCircuitHalfOpenMaxReq int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	defaultSeason, err := getEnvAsInt("GRIDIRON_DEFAULT_SEASON", currentSeason(time.Now()))
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDIRON_DEFAULT_SEASON: %w", err)
	}
	if defaultSeason < 1999 {
		return Config{}, fmt.Errorf("GRIDIRON_DEFAULT_SEASON must be 1999 or later, got %d", defaultSeason)
	}

	nflverseTimeout, err := time.ParseDuration(getEnv("NFLVERSE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_TIMEOUT: %w", err)
	}
	if nflverseTimeout <= 0 {
		return Config{}, fmt.Errorf("NFLVERSE_TIMEOUT must be > 0")
	}
	nflverseMaxRetries, err := getEnvAsInt("NFLVERSE_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_MAX_RETRIES: %w", err)
	}
	if nflverseMaxRetries < 0 {
		return Config{}, fmt.Errorf("NFLVERSE_MAX_RETRIES must be >= 0")
	}
	nflverseMaxWorkers, err := getEnvAsInt("NFLVERSE_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_MAX_WORKERS: %w", err)
	}
	if nflverseMaxWorkers < 1 {
		return Config{}, fmt.Errorf("NFLVERSE_MAX_WORKERS must be >= 1")
	}
	nflverseCircuitEnabled, err := strconv.ParseBool(getEnv("NFLVERSE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_ENABLED: %w", err)
	}
	nflverseCircuitFailureCount, err := getEnvAsInt("NFLVERSE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	nflverseCircuitOpenTimeout, err := time.ParseDuration(getEnv("NFLVERSE_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	nflverseCircuitHalfOpenMaxReq, err := getEnvAsInt("NFLVERSE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	serviceName := getEnv("SERVICE_NAME", "gridiron")

	return Config{
		AppEnv:         appEnv,
		ServiceName:    serviceName,
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DefaultSeason: defaultSeason,
		OutputDir:     getEnv("GRIDIRON_OUTPUT_DIR", "reports"),

		NFLVerseBaseURL:               strings.TrimSpace(getEnv("NFLVERSE_BASE_URL", "")),
		NFLVerseTimeout:               nflverseTimeout,
		NFLVerseMaxRetries:            nflverseMaxRetries,
		NFLVerseMaxWorkers:            nflverseMaxWorkers,
		NFLVerseCircuitEnabled:        nflverseCircuitEnabled,
		NFLVerseCircuitFailureCount:   nflverseCircuitFailureCount,
		NFLVerseCircuitOpenTimeout:    nflverseCircuitOpenTimeout,
		NFLVerseCircuitHalfOpenMaxReq: nflverseCircuitHalfOpenMaxReq,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       getEnv("PYROSCOPE_APP_NAME", serviceName),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,

		PprofEnabled: pprofEnabled,
		PprofAddr:    getEnv("PPROF_ADDR", "localhost:6060"),
	}, nil
}

// currentSeason maps a calendar date to the NFL season it belongs to: a
// season keeps its kickoff year through the winter playoffs.
func currentSeason(now time.Time) int {
	if now.Month() >= time.September {
		return now.Year()
	}
	return now.Year() - 1
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
