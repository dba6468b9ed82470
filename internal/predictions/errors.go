package predictions

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/rookery/pkg/identity"
)

// Domain errors for the prediction pipeline. The messages of the
// authentication errors are returned verbatim as response details.
var (
	ErrNotAuthenticated   = errors.New("Not authenticated")
	ErrInvalidCredentials = errors.New("Invalid authentication credentials")
	ErrAccessDenied       = errors.New("Access denied")
	ErrInference          = errors.New("inference failed")
	ErrBodyTooLarge       = errors.New("request body too large")
	ErrSchemaMismatch     = errors.New("model features do not match the feature record schema")
)

// FieldProblem describes one invalid or missing request field.
type FieldProblem struct {
	Field  string
	Reason string
}

// ValidationError reports a request body that does not satisfy the
// credentials or feature record schema.
type ValidationError struct {
	Problems []FieldProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		if p.Field == "" {
			parts[i] = p.Reason
			continue
		}
		parts[i] = fmt.Sprintf("%s: %s", p.Field, p.Reason)
	}
	return "invalid request body: " + strings.Join(parts, "; ")
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Problems: []FieldProblem{{Field: field, Reason: reason}}}
}

// MapHTTPStatus maps prediction pipeline errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	var validation *ValidationError
	var upstream *identity.UpstreamError

	switch {
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstream):
		return identity.MapHTTPStatus(err)
	default:
		return http.StatusInternalServerError
	}
}
