package config

import "time"

type SecurityConfig interface {
	GetCookieSecret() string
	GetTokenSigningSecret() string
	GetAccessTokenExpiry() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetCookieSecret returns the key used to sign the approved-clients
// cookie. It must be stable across restarts or prior approvals are
// forgotten.
func (Security) GetCookieSecret() string {
	return GetEnv("COOKIE_ENCRYPTION_KEY", "")
}

func (Security) GetTokenSigningSecret() string {
	return GetEnv("TOKEN_SIGNING_SECRET", "")
}

func (Security) GetAccessTokenExpiry() time.Duration {
	value := GetEnv("ACCESS_TOKEN_EXPIRY", "1h")
	expiry, err := time.ParseDuration(value)
	if err != nil {
		return time.Hour
	}
	return expiry
}
