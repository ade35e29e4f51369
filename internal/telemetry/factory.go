package telemetry

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/rainline/internal/config"
)

// NewProvider creates the configured telemetry provider. Providers are
// wrapped in a session cache unless the cache TTL is zero.
func NewProvider(cfg config.TelemetryConfig, logger *logrus.Logger) (Provider, error) {
	if logger == nil {
		logger = logrus.New()
	}

	var provider Provider
	switch cfg.Provider {
	case config.TelemetryProviderHTTP:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("telemetry base URL is required")
		}
		httpCfg := DefaultHTTPClientConfig()
		httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		httpCfg.MaxRetries = cfg.MaxRetries
		httpCfg.RateLimit = cfg.RateLimit
		httpCfg.Burst = cfg.Burst
		httpCfg.CircuitBreakerMax = cfg.CircuitBreakerMax
		client := NewRateLimitedHTTPClient("telemetry", httpCfg, logger)
		provider = NewHTTPProvider(client, cfg.BaseURL, cfg.APIKey, logger)

	case config.TelemetryProviderFile:
		if cfg.ExportDirectory == "" {
			return nil, fmt.Errorf("telemetry export directory is required")
		}
		provider = NewFileProvider(cfg.ExportDirectory, logger)

	default:
		return nil, fmt.Errorf("unknown telemetry provider: %s", cfg.Provider)
	}

	if cfg.CacheTTLMinutes <= 0 {
		return provider, nil
	}
	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	logger.WithFields(logrus.Fields{
		"provider": provider.Name(),
		"ttl":      ttl.String(),
	}).Debug("Caching telemetry sessions")
	return NewCachedProvider(provider, ttl, logger), nil
}
