package oauthmodel

import (
	"encoding/json"
	"net/http"
)

// FlowError is a terminal authorization-flow failure. Each carries the
// machine-readable OAuth error code, a human description, and the HTTP
// status it maps to. Flow errors are never retried by the broker; the
// client restarts from /authorize.
type FlowError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Status      int    `json:"-"`
}

func (e *FlowError) Error() string {
	return e.Code + ": " + e.Description
}

// WriteJSON renders the error as an OAuth-style JSON body.
func (e *FlowError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// NewFlowError builds a FlowError with an ad hoc description.
func NewFlowError(code, description string, status int) *FlowError {
	return &FlowError{Code: code, Description: description, Status: status}
}

// The fixed error vocabulary of the authorization flow.
var (
	ErrMissingClientID = &FlowError{Code: "invalid_request", Description: "Missing client_id", Status: http.StatusBadRequest}
	ErrMissingParams   = &FlowError{Code: "invalid_request", Description: "Missing code or state", Status: http.StatusBadRequest}
	ErrCSRFInvalid     = &FlowError{Code: "invalid_csrf_token", Description: "Invalid CSRF token", Status: http.StatusForbidden}
	ErrConsentDenied   = &FlowError{Code: "access_denied", Description: "Authorization denied by user", Status: http.StatusForbidden}
	ErrStateInvalid    = &FlowError{Code: "invalid_request", Description: "Invalid or expired state", Status: http.StatusBadRequest}
	ErrStateMismatch   = &FlowError{Code: "invalid_request", Description: "State session mismatch", Status: http.StatusBadRequest}
	ErrUpstreamFailure = &FlowError{Code: "upstream_error", Description: "Failed to exchange code for token", Status: http.StatusBadGateway}
	ErrUpstreamDenied  = &FlowError{Code: "invalid_request", Description: "Upstream provider rejected the authorization code", Status: http.StatusBadRequest}
	ErrIdentityFetch   = &FlowError{Code: "upstream_error", Description: "Failed to fetch upstream identity", Status: http.StatusBadGateway}
	ErrNotAllowed      = &FlowError{Code: "access_denied", Description: "Login is not on the allow-list", Status: http.StatusForbidden}
)

// Token endpoint errors (RFC 6749 §5.2).
var (
	ErrInvalidClient       = &FlowError{Code: "invalid_client", Description: "Unknown or unauthenticated client", Status: http.StatusUnauthorized}
	ErrInvalidGrant        = &FlowError{Code: "invalid_grant", Description: "Invalid or expired authorization code", Status: http.StatusBadRequest}
	ErrUnsupportedGrant    = &FlowError{Code: "unsupported_grant_type", Description: "Only authorization_code is supported", Status: http.StatusBadRequest}
	ErrInvalidCodeVerifier = &FlowError{Code: "invalid_grant", Description: "PKCE verification failed", Status: http.StatusBadRequest}
	ErrInvalidRedirectURI  = &FlowError{Code: "invalid_grant", Description: "redirect_uri does not match the authorization request", Status: http.StatusBadRequest}
)
