package predictions

import "github.com/JaimeStill/rookery/pkg/identity"

// Permission is the resource#scope a token must hold to run inference.
const Permission = "infer_endpoint#doInfer"

// Decision is the outcome of the authorization step.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Decide maps a provider permission status to a Decision.
// A token that is not logged in is never evaluated for authorization.
func Decide(status *identity.Status) Decision {
	switch {
	case status == nil || !status.LoggedIn:
		return DenyUnauthenticated
	case !status.Authorized:
		return DenyForbidden
	default:
		return Allow
	}
}

// Err returns the boundary error for a denial, or nil for Allow.
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case DenyForbidden:
		return ErrAccessDenied
	default:
		return ErrInvalidCredentials
	}
}

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyForbidden:
		return "deny_forbidden"
	default:
		return "unknown"
	}
}
