package identity

import (
	"errors"
	"fmt"
	"net/http"
)

// Operations reported by UpstreamError.
const (
	OpTokenExchange   = "token_exchange"
	OpPermissionCheck = "permission_check"
)

// ErrDiscovery indicates the provider configuration could not be discovered.
var ErrDiscovery = errors.New("identity provider discovery failed")

// UpstreamError reports an identity provider failure. Status is the
// provider's HTTP status, or 502 when the provider could not be reached
// or answered with an unusable body. Body is the provider's response text.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	switch e.Op {
	case OpTokenExchange:
		return fmt.Sprintf("Failed to obtain access token: %s", e.Body)
	case OpPermissionCheck:
		return fmt.Sprintf("Failed to check permissions: %s", e.Body)
	default:
		return fmt.Sprintf("identity provider error: %s", e.Body)
	}
}

// MapHTTPStatus maps identity errors to HTTP status codes. Upstream client
// and server errors pass through unchanged.
func MapHTTPStatus(err error) int {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		if upstream.Status >= 400 && upstream.Status <= 599 {
			return upstream.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
