// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, metrics, storage) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JaimeStill/rookery/internal/config"
	"github.com/JaimeStill/rookery/internal/metrics"
	"github.com/JaimeStill/rookery/pkg/lifecycle"
	"github.com/JaimeStill/rookery/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Storage is nil unless a storage endpoint is configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Registry  *prometheus.Registry
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return newInfrastructure(cfg, logger)
}

func newInfrastructure(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(registry); err != nil {
		return nil, fmt.Errorf("metrics init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Registry:  registry,
	}

	if cfg.Storage.Enabled() {
		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = store
	}

	return infra, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Storage == nil {
		return nil
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
