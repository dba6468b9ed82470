package identity

// Grant is one resource entry from a UMA permissions response.
type Grant struct {
	ResourceID   string   `json:"rsid"`
	ResourceName string   `json:"rsname"`
	Scopes       []string `json:"scopes,omitempty"`
}

// Status is the outcome of a permission check for a single token.
type Status struct {
	// LoggedIn reports whether the provider accepted the token.
	LoggedIn bool
	// Authorized reports whether every requested permission was granted.
	Authorized bool
	// Granted lists the permissions the provider returned, as resource or resource#scope.
	Granted []string
	// Missing lists the requested permissions that were not granted.
	Missing []string
}

// Evaluate builds a Status for a logged-in token from the grants returned by the
// provider. A grant without scopes satisfies only the bare resource name.
func Evaluate(permissions []string, grants []Grant) *Status {
	needed := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		needed[p] = struct{}{}
	}

	granted := make([]string, 0, len(grants))
	for _, g := range grants {
		if len(g.Scopes) == 0 {
			granted = append(granted, g.ResourceName)
			delete(needed, g.ResourceName)
			continue
		}
		for _, scope := range g.Scopes {
			p := g.ResourceName + "#" + scope
			granted = append(granted, p)
			delete(needed, p)
		}
	}

	missing := make([]string, 0, len(needed))
	for _, p := range permissions {
		if _, ok := needed[p]; ok {
			missing = append(missing, p)
		}
	}

	return &Status{
		LoggedIn:   true,
		Authorized: len(missing) == 0,
		Granted:    granted,
		Missing:    missing,
	}
}

func denied(loggedIn bool, permissions []string) *Status {
	return &Status{
		LoggedIn: loggedIn,
		Missing:  append([]string(nil), permissions...),
	}
}

