package api

import (
	"github.com/JaimeStill/rookery/internal/config"
	"github.com/JaimeStill/rookery/internal/predictions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Predictions predictions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) (*Domain, error) {
	predictionsSystem, err := predictions.New(
		runtime.Predictor,
		runtime.Identity,
		&cfg.Predictions,
		runtime.Logger,
	)
	if err != nil {
		return nil, err
	}

	return &Domain{
		Predictions: predictionsSystem,
	}, nil
}
