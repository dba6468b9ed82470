// Package identity is a client for an OpenID Connect provider with
// User-Managed Access (UMA) authorization services, such as Keycloak.
// It exchanges client credentials for access tokens and checks whether a
// token is granted resource#scope permissions.
package identity

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	umaGrantType    = "urn:ietf:params:oauth:grant-type:uma-ticket"
	maxResponseSize = 1 << 20
)

// Credentials identify a confidential client for the client_credentials grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Client talks to the identity provider. Implementations are safe for
// concurrent use.
type Client interface {
	// AccessToken exchanges credentials for an access token.
	// A rejected exchange returns an *UpstreamError carrying the provider's status and body.
	AccessToken(ctx context.Context, creds Credentials) (string, error)
	// Status checks token against the given resource#scope permissions.
	// A rejected token yields a Status, not an error.
	Status(ctx context.Context, token string, permissions ...string) (*Status, error)
}

type keycloak struct {
	tokenURL string
	audience string
	http     *http.Client
	logger   *slog.Logger
}

// New discovers the provider configuration for the configured realm and
// returns a Client bound to its token endpoint. Discovery runs once; the
// endpoint is reused for the lifetime of the Client.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (Client, error) {
	httpClient := &http.Client{Timeout: cfg.TimeoutDuration()}
	if cfg.InsecureSkipVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		httpClient.Transport = transport
	}

	return newClient(ctx, cfg, httpClient, logger)
}

func newClient(ctx context.Context, cfg *Config, httpClient *http.Client, logger *slog.Logger) (Client, error) {
	logger = logger.With("system", "identity")

	issuer := cfg.Issuer()
	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, httpClient), issuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDiscovery, issuer, err)
	}

	tokenURL := provider.Endpoint().TokenURL
	if tokenURL == "" {
		return nil, fmt.Errorf("%w: %s: token_endpoint missing", ErrDiscovery, issuer)
	}

	logger.Info("identity provider discovered", "issuer", issuer, "token_endpoint", tokenURL)

	return &keycloak{
		tokenURL: tokenURL,
		audience: cfg.ClientID,
		http:     httpClient,
		logger:   logger,
	}, nil
}

func (k *keycloak) AccessToken(ctx context.Context, creds Credentials) (string, error) {
	cc := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     k.tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tok, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, k.http))
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			return "", &UpstreamError{
				Op:     OpTokenExchange,
				Status: rErr.Response.StatusCode,
				Body:   string(rErr.Body),
			}
		}
		return "", &UpstreamError{
			Op:     OpTokenExchange,
			Status: http.StatusBadGateway,
			Body:   err.Error(),
		}
	}

	return tok.AccessToken, nil
}

func (k *keycloak) Status(ctx context.Context, token string, permissions ...string) (*Status, error) {
	form := url.Values{
		"grant_type":    {umaGrantType},
		"audience":      {k.audience},
		"response_mode": {"permissions"},
	}
	for _, p := range permissions {
		form.Add("permission", p)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build permission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := k.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{
			Op:     OpPermissionCheck,
			Status: http.StatusBadGateway,
			Body:   err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &UpstreamError{
			Op:     OpPermissionCheck,
			Status: http.StatusBadGateway,
			Body:   err.Error(),
		}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var grants []Grant
		if err := json.Unmarshal(body, &grants); err != nil {
			return nil, &UpstreamError{
				Op:     OpPermissionCheck,
				Status: http.StatusBadGateway,
				Body:   fmt.Sprintf("decode permissions: %v", err),
			}
		}
		return Evaluate(permissions, grants), nil
	case http.StatusUnauthorized:
		return denied(false, permissions), nil
	case http.StatusForbidden:
		return denied(true, permissions), nil
	default:
		k.logger.Warn("permission check rejected", "status", resp.StatusCode)
		return nil, &UpstreamError{
			Op:     OpPermissionCheck,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}
}
