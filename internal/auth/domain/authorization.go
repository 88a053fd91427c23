package domain

// AuthorizationDecision is the immutable result of one authorization check.
// Permissions and Roles are populated only when the decision is granted;
// Reason is populated only when it is denied.
type AuthorizationDecision struct {
	Granted        bool     `json:"granted"`
	Username       string   `json:"username"`
	Resource       string   `json:"resource"`
	Action         string   `json:"action"`
	Permissions    []string `json:"permissions,omitempty"`
	Roles          []string `json:"roles,omitempty"`
	OrganizationID *int64   `json:"organization_id,omitempty"`
	Reason         string   `json:"reason,omitempty"`
}

// UserPermissions is the read-path projection of a user's effective access.
// Lookup failures produce an empty, inactive projection instead of an error.
type UserPermissions struct {
	Username       string   `json:"username"`
	Permissions    []string `json:"permissions"`
	Roles          []string `json:"roles"`
	OrganizationID *int64   `json:"organization_id,omitempty"`
	IsActive       bool     `json:"is_active"`
}

// IdentityAssertion is an externally-verified claim of identity handed over
// by the identity provider bridge. The core trusts it as input and never
// re-verifies it.
type IdentityAssertion struct {
	Username     string
	Authorities  []string
	SessionIndex *string
}

// AuthenticationResult is the structured outcome of one authentication
// attempt. Failures are results, not errors: Message carries a human-readable
// explanation and no exception escapes the flow.
type AuthenticationResult struct {
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token,omitempty"`
	ExpiresIn     int64  `json:"expires_in,omitempty"`
	Message       string `json:"message,omitempty"`
}
