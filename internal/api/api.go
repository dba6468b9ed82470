// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"

	"github.com/JaimeStill/rookery/internal/config"
	"github.com/JaimeStill/rookery/internal/infrastructure"
	"github.com/JaimeStill/rookery/pkg/routes"
)

// Module is the assembled API: its runtime, domain systems, and routes.
type Module struct {
	Runtime *Runtime
	Domain  *Domain
}

// NewModule creates the API module. It blocks until the model is loaded and
// the identity provider has been discovered.
func NewModule(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*Module, error) {
	runtime, err := NewRuntime(ctx, cfg, infra)
	if err != nil {
		return nil, err
	}

	domain, err := NewDomain(runtime, cfg)
	if err != nil {
		return nil, err
	}

	return &Module{
		Runtime: runtime,
		Domain:  domain,
	}, nil
}

// Routes returns the route groups of every domain system.
func (m *Module) Routes() []routes.Group {
	return domainRoutes(m.Domain)
}
