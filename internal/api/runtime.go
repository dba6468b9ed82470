package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/rookery/internal/config"
	"github.com/JaimeStill/rookery/internal/infrastructure"
	"github.com/JaimeStill/rookery/internal/metrics"
	"github.com/JaimeStill/rookery/internal/model"
	"github.com/JaimeStill/rookery/pkg/identity"
)

// Runtime extends Infrastructure with the loaded model and identity client.
type Runtime struct {
	*infrastructure.Infrastructure
	Predictor model.Predictor
	Identity  identity.Client
}

// NewRuntime loads the model artifact and discovers the identity provider
// concurrently. Either failure aborts startup.
func NewRuntime(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")

	var (
		predictor model.Predictor
		client    identity.Client
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := model.Load(gctx, cfg.Model.Path, infra.Storage)
		if err != nil {
			return err
		}
		logger.Info("model loaded", "path", cfg.Model.Path, "features", len(p.Features()))
		predictor = p
		return nil
	})

	g.Go(func() error {
		c, err := identity.New(gctx, &cfg.Identity, logger)
		if err != nil {
			return err
		}
		client = c
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("api runtime: %w", err)
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Registry:  infra.Registry,
			Storage:   infra.Storage,
		},
		Predictor: predictor,
		Identity:  metrics.InstrumentIdentity(client),
	}, nil
}
