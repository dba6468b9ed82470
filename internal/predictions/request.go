package predictions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JaimeStill/rookery/pkg/formatting"
	"github.com/JaimeStill/rookery/pkg/identity"
)

// Payload is a decoded prediction request body. Credentials and features
// are extracted separately so each is validated at its pipeline stage.
type Payload struct {
	raw map[string]json.RawMessage
}

// DecodePayload reads a JSON object request body.
func DecodePayload(body io.Reader) (*Payload, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit is %s", ErrBodyTooLarge, formatting.FormatBytes(maxErr.Limit))
		}
		return nil, invalid("", "request body must be a JSON object")
	}
	if raw == nil {
		return nil, invalid("", "request body must be a JSON object")
	}
	return &Payload{raw: raw}, nil
}

// Credentials extracts the client_id and client_secret fields.
func (p *Payload) Credentials() (identity.Credentials, error) {
	var problems []FieldProblem

	read := func(name string) string {
		value, ok := p.raw[name]
		if !ok || isNull(value) {
			problems = append(problems, FieldProblem{Field: name, Reason: "field required"})
			return ""
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			problems = append(problems, FieldProblem{Field: name, Reason: "must be a string"})
			return ""
		}
		if s == "" {
			problems = append(problems, FieldProblem{Field: name, Reason: "must not be empty"})
		}
		return s
	}

	creds := identity.Credentials{
		ClientID:     read("client_id"),
		ClientSecret: read("client_secret"),
	}
	if len(problems) > 0 {
		return identity.Credentials{}, &ValidationError{Problems: problems}
	}
	return creds, nil
}

// Features extracts and validates the FeatureRecord fields.
func (p *Payload) Features() (FeatureRecord, error) {
	return parseFeatures(p.raw)
}

// BearerToken returns the token from an Authorization: Bearer header.
// The scheme match is case-insensitive; an empty token counts as absent.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
