package predictions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/JaimeStill/rookery/internal/model"
	"github.com/JaimeStill/rookery/pkg/identity"
)

type service struct {
	predictor model.Predictor
	identity  identity.Client
	source    TokenSource
	maxBody   int64
	logger    *slog.Logger
}

// New creates the prediction system. It fails with ErrSchemaMismatch unless
// the predictor's features equal FeatureNames in name and order.
func New(
	predictor model.Predictor,
	idp identity.Client,
	cfg *Config,
	logger *slog.Logger,
) (System, error) {
	if !slices.Equal(predictor.Features(), FeatureNames[:]) {
		return nil, fmt.Errorf("%w: model has %v", ErrSchemaMismatch, predictor.Features())
	}

	return &service{
		predictor: predictor,
		identity:  idp,
		source:    cfg.Source(),
		maxBody:   cfg.MaxBodyBytes(),
		logger:    logger.With("system", "predictions"),
	}, nil
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger, s.maxBody)
}

func (s *service) Source() TokenSource {
	return s.source
}

func (s *service) Authorize(ctx context.Context, bearer string, creds *identity.Credentials) (Decision, error) {
	token := bearer

	if s.source == TokenFromCredentials {
		if creds == nil {
			return DenyUnauthenticated, errors.New("client credentials required")
		}
		exchanged, err := s.identity.AccessToken(ctx, *creds)
		if err != nil {
			return DenyUnauthenticated, err
		}
		token = exchanged
	}

	status, err := s.identity.Status(ctx, token, Permission)
	if err != nil {
		return DenyUnauthenticated, err
	}

	decision := Decide(status)
	if decision != Allow {
		s.logger.Info(
			"authorization denied",
			"decision", decision,
			"logged_in", status.LoggedIn,
			"missing", status.Missing,
		)
	}
	return decision, nil
}

func (s *service) Infer(record FeatureRecord) (*Result, error) {
	return Infer(s.predictor, record)
}
