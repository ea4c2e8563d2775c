package oauthmodel

import "net/http"

// TokenRequest holds the form parameters of a /token request. Only the
// authorization_code grant is supported; refresh tokens are out of
// scope for the broker.
type TokenRequest struct {
	// GrantType must be "authorization_code".
	GrantType string

	// ClientID identifies the client exchanging the code.
	ClientID string

	// ClientSecret authenticates confidential clients. Public clients
	// authenticate with PKCE instead.
	ClientSecret string

	// Code is the single-use authorization code minted when the
	// authorization completed.
	Code string

	// RedirectURI must repeat the redirect_uri of the authorization
	// request.
	RedirectURI string

	// CodeVerifier is the PKCE verifier matching the authorization
	// request's code_challenge.
	CodeVerifier string
}

// ParseTokenRequest extracts a TokenRequest from a parsed form body.
func ParseTokenRequest(r *http.Request) TokenRequest {
	return TokenRequest{
		GrantType:    r.FormValue("grant_type"),
		ClientID:     r.FormValue("client_id"),
		ClientSecret: r.FormValue("client_secret"),
		Code:         r.FormValue("code"),
		RedirectURI:  r.FormValue("redirect_uri"),
		CodeVerifier: r.FormValue("code_verifier"),
	}
}
