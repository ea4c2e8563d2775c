package config

// UpstreamConfig covers the upstream identity provider the broker
// defers authentication to. GitHub is the default; setting an OIDC
// issuer switches to discovery-based OIDC instead.
type UpstreamConfig interface {
	GetGitHubClientID() string
	GetGitHubClientSecret() string
	GetOIDCIssuer() string
	GetAllowedLogins() string
}

type Upstream struct{}

var _ UpstreamConfig = Upstream{}

func (Upstream) GetGitHubClientID() string {
	return GetEnv("GITHUB_CLIENT_ID", "")
}

func (Upstream) GetGitHubClientSecret() string {
	return GetEnv("GITHUB_CLIENT_SECRET", "")
}

// GetOIDCIssuer returns the issuer URL of a generic OIDC provider.
// Empty means GitHub OAuth is used instead.
func (Upstream) GetOIDCIssuer() string {
	return GetEnv("OIDC_ISSUER", "")
}

// GetAllowedLogins returns the comma-separated list of upstream logins
// permitted to complete an authorization. An empty list denies all.
func (Upstream) GetAllowedLogins() string {
	return GetEnv("ALLOWED_GITHUB_USERS", "")
}
