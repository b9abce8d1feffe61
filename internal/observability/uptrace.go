package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/porchcrew/gridiron/internal/config"
	"github.com/porchcrew/gridiron/internal/platform/logging"
)

// InitUptrace wires the global OpenTelemetry providers to Uptrace when a DSN
// is configured. The returned shutdown flushes pending spans; for a batch
// run that flush is where most exported data actually leaves the process.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	noop := func(context.Context) error { return nil }
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("tracing disabled",
			"enabled", cfg.UptraceEnabled,
			"dsn_set", strings.TrimSpace(cfg.UptraceDSN) != "",
		)
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)

	logger.Info("tracing enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)

	return uptrace.Shutdown, nil
}
