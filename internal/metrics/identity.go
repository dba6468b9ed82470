package metrics

import (
	"context"
	"time"

	"github.com/JaimeStill/rookery/pkg/identity"
)

type instrumented struct {
	next identity.Client
}

// InstrumentIdentity wraps c so every provider call is counted and timed.
func InstrumentIdentity(c identity.Client) identity.Client {
	return &instrumented{next: c}
}

func (i *instrumented) AccessToken(ctx context.Context, creds identity.Credentials) (string, error) {
	start := time.Now()
	token, err := i.next.AccessToken(ctx, creds)
	observeIdentity(identity.OpTokenExchange, time.Since(start), err)
	return token, err
}

func (i *instrumented) Status(ctx context.Context, token string, permissions ...string) (*identity.Status, error) {
	start := time.Now()
	status, err := i.next.Status(ctx, token, permissions...)
	observeIdentity(identity.OpPermissionCheck, time.Since(start), err)
	return status, err
}

