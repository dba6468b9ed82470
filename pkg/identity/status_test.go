package identity_test

import (
	"slices"
	"testing"

	"github.com/JaimeStill/rookery/pkg/identity"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name           string
		grants         []identity.Grant
		wantAuthorized bool
		wantMissing    []string
	}{
		{
			name:           "scope granted",
			grants:         []identity.Grant{{ResourceName: "infer_endpoint", Scopes: []string{"doInfer"}}},
			wantAuthorized: true,
			wantMissing:    []string{},
		},
		{
			name:           "other scope only",
			grants:         []identity.Grant{{ResourceName: "infer_endpoint", Scopes: []string{"view"}}},
			wantAuthorized: false,
			wantMissing:    []string{testPermission},
		},
		{
			name:           "resource without scopes does not satisfy scoped permission",
			grants:         []identity.Grant{{ResourceName: "infer_endpoint"}},
			wantAuthorized: false,
			wantMissing:    []string{testPermission},
		},
		{
			name:           "no grants",
			grants:         nil,
			wantAuthorized: false,
			wantMissing:    []string{testPermission},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := identity.Evaluate([]string{testPermission}, tt.grants)

			if !status.LoggedIn {
				t.Error("logged in: got false, want true")
			}
			if status.Authorized != tt.wantAuthorized {
				t.Errorf("authorized: got %v, want %v", status.Authorized, tt.wantAuthorized)
			}
			if !slices.Equal(status.Missing, tt.wantMissing) {
				t.Errorf("missing: got %v, want %v", status.Missing, tt.wantMissing)
			}
		})
	}
}

func TestEvaluateGrantedList(t *testing.T) {
	status := identity.Evaluate([]string{testPermission}, []identity.Grant{
		{ResourceName: "infer_endpoint", Scopes: []string{"doInfer", "view"}},
		{ResourceName: "healthcheck"},
	})

	want := []string{"infer_endpoint#doInfer", "infer_endpoint#view", "healthcheck"}
	if !slices.Equal(status.Granted, want) {
		t.Errorf("granted: got %v, want %v", status.Granted, want)
	}
}
