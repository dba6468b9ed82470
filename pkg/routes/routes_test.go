package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/rookery/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/predictions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: ok},
		},
		Children: []routes.Group{
			{
				Prefix: "/batch",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: ok},
				},
			},
		},
	})

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{"root route", "POST", "/predictions", http.StatusOK},
		{"child route", "POST", "/predictions/batch", http.StatusOK},
		{"wrong method", "GET", "/predictions", http.StatusMethodNotAllowed},
		{"unknown path", "POST", "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix:     "/outer",
		Middleware: []func(http.Handler) http.Handler{tag("outer")},
		Children: []routes.Group{
			{
				Prefix:     "/inner",
				Middleware: []func(http.Handler) http.Handler{tag("inner")},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: func(w http.ResponseWriter, r *http.Request) {
						order = append(order, "handler")
					}},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/outer/inner", nil))

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("execution count: got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d]: got %s, want %s", i, order[i], want[i])
		}
	}
}
