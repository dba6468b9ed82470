package predictions

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/rookery/internal/metrics"
	"github.com/JaimeStill/rookery/pkg/handlers"
	"github.com/JaimeStill/rookery/pkg/identity"
	"github.com/JaimeStill/rookery/pkg/middleware"
	"github.com/JaimeStill/rookery/pkg/routes"
)

// Handler provides the HTTP endpoint for predictions.
type Handler struct {
	sys     System
	logger  *slog.Logger
	maxBody int64
}

// NewHandler creates a Handler with the given system, logger, and body limit.
func NewHandler(sys System, logger *slog.Logger, maxBody int64) *Handler {
	return &Handler{
		sys:     sys,
		logger:  logger.With("handler", "predictions"),
		maxBody: maxBody,
	}
}

// Routes returns the route group definition for prediction endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:     "/predictions",
		Middleware: []func(http.Handler) http.Handler{middleware.MaxBytes(h.maxBody)},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Predict},
		},
	}
}

// Predict authenticates the caller, checks the inference permission, and
// returns the predicted species for the feature record in the body.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := metrics.OutcomeError
	defer func() {
		metrics.ObservePrediction(time.Since(start), outcome)
	}()

	fail := func(err error) {
		outcome = outcomeOf(err)
		status := MapHTTPStatus(err)
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			handlers.RespondChallenge(w, h.logger, status, err)
			return
		}
		handlers.RespondError(w, h.logger, status, err)
	}

	bearer, ok := BearerToken(r)
	if !ok {
		fail(ErrNotAuthenticated)
		return
	}

	payload, err := DecodePayload(r.Body)
	if err != nil {
		fail(err)
		return
	}

	var creds *identity.Credentials
	if h.sys.Source() == TokenFromCredentials {
		c, err := payload.Credentials()
		if err != nil {
			fail(err)
			return
		}
		creds = &c
	}

	decision, err := h.sys.Authorize(r.Context(), bearer, creds)
	if err != nil {
		fail(err)
		return
	}
	if err := decision.Err(); err != nil {
		fail(err)
		return
	}

	record, err := payload.Features()
	if err != nil {
		fail(err)
		return
	}

	result, err := h.sys.Infer(record)
	if err != nil {
		fail(err)
		return
	}

	outcome = metrics.OutcomeSuccess
	handlers.RespondJSON(w, http.StatusOK, result)
}

func outcomeOf(err error) string {
	var validation *ValidationError
	var upstream *identity.UpstreamError

	switch {
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrInvalidCredentials):
		return metrics.OutcomeUnauthenticated
	case errors.Is(err, ErrAccessDenied):
		return metrics.OutcomeForbidden
	case errors.Is(err, ErrBodyTooLarge), errors.As(err, &validation):
		return metrics.OutcomeInvalid
	case errors.As(err, &upstream):
		return metrics.OutcomeUpstream
	default:
		return metrics.OutcomeError
	}
}
