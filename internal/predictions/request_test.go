package predictions_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/rookery/internal/predictions"
)

func TestDecodePayloadRejectsNonObject(t *testing.T) {
	for _, body := range []string{"", "[1, 2]", "null", `"text"`, "{broken"} {
		t.Run(body, func(t *testing.T) {
			_, err := predictions.DecodePayload(strings.NewReader(body))

			var validation *predictions.ValidationError
			if !errors.As(err, &validation) {
				t.Errorf("error: got %v, want *ValidationError", err)
			}
		})
	}
}

func TestDecodePayloadTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	body := http.MaxBytesReader(rec, nopCloser{strings.NewReader(adelieBody)}, 16)

	_, err := predictions.DecodePayload(body)
	if !errors.Is(err, predictions.ErrBodyTooLarge) {
		t.Errorf("error: got %v, want ErrBodyTooLarge", err)
	}
}

type nopCloser struct {
	*strings.Reader
}

func (nopCloser) Close() error { return nil }

func TestCredentials(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantFields []string
	}{
		{"present", `{"client_id": "svc", "client_secret": "shh"}`, false, nil},
		{"missing both", `{}`, true, []string{"client_id", "client_secret"}},
		{"empty id", `{"client_id": "", "client_secret": "shh"}`, true, []string{"client_id"}},
		{"numeric secret", `{"client_id": "svc", "client_secret": 42}`, true, []string{"client_secret"}},
		{"null id", `{"client_id": null, "client_secret": "shh"}`, true, []string{"client_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := predictions.DecodePayload(strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}

			creds, err := payload.Credentials()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("credentials failed: %v", err)
				}
				if creds.ClientID != "svc" || creds.ClientSecret != "shh" {
					t.Errorf("credentials: got %+v", creds)
				}
				return
			}

			var validation *predictions.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("error: got %v, want *ValidationError", err)
			}
			if len(validation.Problems) != len(tt.wantFields) {
				t.Fatalf("problems: got %+v, want fields %v", validation.Problems, tt.wantFields)
			}
			for i, field := range tt.wantFields {
				if validation.Problems[i].Field != field {
					t.Errorf("problem %d: got %s, want %s", i, validation.Problems[i].Field, field)
				}
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{"bearer", "Bearer abc.def", "abc.def", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"absent", "", "", false},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", false},
		{"scheme only", "Bearer", "", false},
		{"empty token", "Bearer   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/predictions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, ok := predictions.BearerToken(req)
			if ok != tt.wantOK || token != tt.wantToken {
				t.Errorf("got (%q, %v), want (%q, %v)", token, ok, tt.wantToken, tt.wantOK)
			}
		})
	}
}
