package predictions_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/JaimeStill/rookery/internal/model"
	"github.com/JaimeStill/rookery/internal/predictions"
	"github.com/JaimeStill/rookery/pkg/identity"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeIdentity issues "token-<client_id>" for known clients and resolves
// token statuses from a fixed table.
type fakeIdentity struct {
	mu          sync.Mutex
	secrets     map[string]string
	statuses    map[string]*identity.Status
	exchangeErr error
	exchanges   int
	checks      []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		secrets: map[string]string{
			"Ok":             "secret",
			"Not_logged":     "secret",
			"Not_authorized": "secret",
		},
		statuses: map[string]*identity.Status{
			"token-Ok":             {LoggedIn: true, Authorized: true, Granted: []string{predictions.Permission}},
			"token-Not_logged":     {LoggedIn: false, Authorized: false},
			"token-Not_authorized": {LoggedIn: true, Authorized: false, Missing: []string{predictions.Permission}},
			"Ok":                   {LoggedIn: true, Authorized: true},
			"Not_authorized":       {LoggedIn: true, Authorized: false},
		},
	}
}

func (f *fakeIdentity) AccessToken(ctx context.Context, creds identity.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchanges++

	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	if secret, ok := f.secrets[creds.ClientID]; !ok || secret != creds.ClientSecret {
		return "", &identity.UpstreamError{
			Op:     identity.OpTokenExchange,
			Status: 401,
			Body:   `{"error":"invalid_client"}`,
		}
	}
	return "token-" + creds.ClientID, nil
}

func (f *fakeIdentity) Status(ctx context.Context, token string, permissions ...string) (*identity.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks = append(f.checks, token)

	if status, ok := f.statuses[token]; ok {
		return status, nil
	}
	return &identity.Status{LoggedIn: false}, nil
}

func (f *fakeIdentity) calls() (exchanges int, checks []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exchanges, append([]string(nil), f.checks...)
}

// stubPredictor returns fixed labels and records the last frame it saw.
type stubPredictor struct {
	features []string
	labels   []string
	err      error
	frame    model.Frame
}

func newStubPredictor(labels ...string) *stubPredictor {
	return &stubPredictor{
		features: predictions.FeatureNames[:],
		labels:   labels,
	}
}

func (s *stubPredictor) Features() []string {
	return s.features
}

func (s *stubPredictor) Predict(frame model.Frame) ([]string, error) {
	s.frame = frame
	return s.labels, s.err
}
