package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/rookery/internal/infrastructure"
	"github.com/JaimeStill/rookery/pkg/handlers"
	"github.com/JaimeStill/rookery/pkg/routes"
)

func buildRouter(infra *infrastructure.Infrastructure, groups ...routes.Group) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, append([]routes.Group{systemRoutes(infra)}, groups...)...)
	return mux
}

func systemRoutes(infra *infrastructure.Infrastructure) routes.Group {
	metrics := promhttp.HandlerFor(infra.Registry, promhttp.HandlerOpts{})

	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/healthcheck", Handler: healthcheck},
			{Method: "GET", Pattern: "/readyz", Handler: readyz(infra)},
			{Method: "GET", Pattern: "/metrics", Handler: metrics.ServeHTTP},
		},
	}
}

func healthcheck(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readyz(infra *infrastructure.Infrastructure) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
