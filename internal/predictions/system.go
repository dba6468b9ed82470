// Package predictions implements the authorization-gated species prediction endpoint.
package predictions

import (
	"context"

	"github.com/JaimeStill/rookery/pkg/identity"
)

// System defines the public contract for the prediction pipeline.
type System interface {
	Handler() *Handler

	// Authorize resolves the token selected by the configured TokenSource and
	// decides whether it may run inference. creds is required for
	// TokenFromCredentials and ignored otherwise.
	Authorize(ctx context.Context, bearer string, creds *identity.Credentials) (Decision, error)

	// Infer runs the loaded predictor on record.
	Infer(record FeatureRecord) (*Result, error)

	// Source reports which token Authorize checks.
	Source() TokenSource
}
