package main

import (
	"context"
	"net/http"
	"time"

	"github.com/JaimeStill/rookery/internal/api"
	"github.com/JaimeStill/rookery/internal/config"
	"github.com/JaimeStill/rookery/internal/infrastructure"
	"github.com/JaimeStill/rookery/pkg/middleware"
	"github.com/JaimeStill/rookery/pkg/routes"
)

type Server struct {
	infra *infrastructure.Infrastructure
	api   *api.Module
	http  *httpServer
}

func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	infra.Logger.Info(
		"rookery starting",
		"version", cfg.Version,
		"env", cfg.Env(),
		"token_source", cfg.Predictions.Source(),
	)

	apiModule, err := api.NewModule(ctx, cfg, infra)
	if err != nil {
		return nil, err
	}

	handler := newHandler(cfg, infra, apiModule.Routes()...)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"issuer", cfg.Identity.Issuer(),
		"model", cfg.Model.Path,
	)

	return &Server{
		infra: infra,
		api:   apiModule,
		http:  newHTTPServer(&cfg.Server, handler, infra.Logger),
	}, nil
}

func newHandler(cfg *config.Config, infra *infrastructure.Infrastructure, groups ...routes.Group) http.Handler {
	router := buildRouter(infra, groups...)

	return middleware.New(
		middleware.RequestID(),
		middleware.Logger(infra.Logger),
		middleware.CORS(&cfg.API.CORS),
	).Apply(router)
}

func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			s.infra.Logger.Error("subsystem startup failed", "error", err)
			return
		}
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
