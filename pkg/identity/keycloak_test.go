package identity_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	testRealm      = "penguins"
	testClientID   = "rookery"
	testPermission = "infer_endpoint#doInfer"
)

// fakeKeycloak serves discovery, client_credentials and UMA permission
// responses for a single realm.
type fakeKeycloak struct {
	*httptest.Server
	clients map[string]string
	tokens  map[string]int
	grants  map[string]string

	mu   sync.Mutex
	form url.Values
}

func newFakeKeycloak(t *testing.T) *fakeKeycloak {
	t.Helper()

	fk := &fakeKeycloak{
		clients: map[string]string{"analyst": "s3cret"},
		tokens:  map[string]int{"token-analyst": http.StatusOK},
		grants: map[string]string{
			"token-analyst": `[{"rsid":"1","rsname":"infer_endpoint","scopes":["doInfer"]}]`,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /realms/"+testRealm+"/.well-known/openid-configuration", fk.discovery)
	mux.HandleFunc("POST /realms/"+testRealm+"/protocol/openid-connect/token", fk.token)

	fk.Server = httptest.NewServer(mux)
	t.Cleanup(fk.Close)
	return fk
}

func (fk *fakeKeycloak) lastForm() url.Values {
	fk.mu.Lock()
	defer fk.mu.Unlock()
	return fk.form
}

func (fk *fakeKeycloak) issuer() string {
	return fk.URL + "/realms/" + testRealm
}

func (fk *fakeKeycloak) discovery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"issuer":                 fk.issuer(),
		"authorization_endpoint": fk.issuer() + "/protocol/openid-connect/auth",
		"token_endpoint":         fk.issuer() + "/protocol/openid-connect/token",
		"jwks_uri":               fk.issuer() + "/protocol/openid-connect/certs",
	})
}

func (fk *fakeKeycloak) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fk.mu.Lock()
	fk.form = r.PostForm
	fk.mu.Unlock()

	switch r.PostForm.Get("grant_type") {
	case "client_credentials":
		fk.clientCredentials(w, r)
	case "urn:ietf:params:oauth:grant-type:uma-ticket":
		fk.uma(w, r)
	default:
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"unsupported_grant_type"}`))
	}
}

func (fk *fakeKeycloak) clientCredentials(w http.ResponseWriter, r *http.Request) {
	id := r.PostForm.Get("client_id")
	secret, ok := fk.clients[id]
	if !ok || secret != r.PostForm.Get("client_secret") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client","error_description":"Invalid client or Invalid client credentials"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"access_token": "token-" + id,
		"token_type":   "Bearer",
		"expires_in":   300,
	})
}

func (fk *fakeKeycloak) uma(w http.ResponseWriter, r *http.Request) {
	token, found := cutBearer(r.Header.Get("Authorization"))
	status, known := fk.tokens[token]
	if !found || !known {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant"}`))
		return
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"access_denied","error_description":"not_authorized"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(fk.grants[token]))
}

func cutBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", false
	}
	return header[len(prefix):], true
}
