// Package oauthmodel holds the wire-level OAuth types shared between the
// broker's HTTP surface and the authorization provider.
package oauthmodel

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// AuthRequest is the parsed form of an incoming client authorization
// request. It is the payload the ephemeral state store keeps between
// the /authorize and /callback legs, and the structure round-tripped
// through the consent dialog's hidden state field.
type AuthRequest struct {
	// ResponseType is the requested response type. Only "code" is
	// supported by the broker.
	ResponseType string `json:"responseType"`

	// ClientID identifies the application requesting authorization.
	// Required: a request without it is rejected before any other
	// processing.
	ClientID string `json:"clientId"`

	// RedirectURI is where the authorization code will be delivered.
	// Validated against the client's registered URIs when the
	// authorization is completed.
	RedirectURI string `json:"redirectUri"`

	// Scope holds the requested scopes, already split.
	Scope []string `json:"scope"`

	// State is the client's opaque CSRF value, echoed back on the final
	// redirect. Distinct from the broker's own state token.
	State string `json:"state"`

	// CodeChallenge / CodeChallengeMethod carry the client's PKCE
	// parameters, verified at the token endpoint.
	CodeChallenge       string `json:"codeChallenge,omitempty"`
	CodeChallengeMethod string `json:"codeChallengeMethod,omitempty"`
}

// ParseAuthRequest extracts an AuthRequest from the query parameters of
// an incoming /authorize request.
func ParseAuthRequest(r *http.Request) *AuthRequest {
	q := r.URL.Query()
	return &AuthRequest{
		ResponseType:        q.Get("response_type"),
		ClientID:            q.Get("client_id"),
		RedirectURI:         q.Get("redirect_uri"),
		Scope:               strings.Fields(q.Get("scope")),
		State:               q.Get("state"),
		CodeChallenge:       q.Get("code_challenge"),
		CodeChallengeMethod: q.Get("code_challenge_method"),
	}
}

// ScopeString returns the scopes as a single space-separated string.
func (a *AuthRequest) ScopeString() string {
	return strings.Join(a.Scope, " ")
}

// Encode serializes the request to a cookie- and form-safe blob for the
// consent dialog's hidden field.
func (a *AuthRequest) Encode() (string, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("[AuthRequest Encode] marshal: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeAuthRequest reverses Encode.
func DecodeAuthRequest(encoded string) (*AuthRequest, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("[DecodeAuthRequest] decode: %w", err)
	}
	var req AuthRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("[DecodeAuthRequest] unmarshal: %w", err)
	}
	return &req, nil
}
