package server

import (
	"encoding/json"
	"net/http"
)

// AuthorizationServerMetadata is the discovery document served at
// /.well-known/oauth-authorization-server (RFC 8414).
type AuthorizationServerMetadata struct {
	Issuer                            string   `json:"issuer"`
	AuthorizationEndpoint             string   `json:"authorization_endpoint"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	RegistrationEndpoint              string   `json:"registration_endpoint"`
	ResponseTypesSupported            []string `json:"response_types_supported"`
	GrantTypesSupported               []string `json:"grant_types_supported"`
	CodeChallengeMethodsSupported     []string `json:"code_challenge_methods_supported"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`
}

func (s *Server) MetadataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseURL := s.config.GetBaseURL()
		metadata := AuthorizationServerMetadata{
			Issuer:                            baseURL,
			AuthorizationEndpoint:             baseURL + s.config.GetAuthorizePath(),
			TokenEndpoint:                     baseURL + s.config.GetTokenPath(),
			RegistrationEndpoint:              baseURL + s.config.GetRegisterPath(),
			ResponseTypesSupported:            []string{"code"},
			GrantTypesSupported:               []string{"authorization_code"},
			CodeChallengeMethodsSupported:     []string{"S256", "plain"},
			TokenEndpointAuthMethodsSupported: []string{"client_secret_post", "none"},
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(metadata)
	}
}

// MCPHandler hands the request to the streamable MCP transport. The
// bearer middleware has already verified the token and attached its
// props by the time this runs.
func (s *Server) MCPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.mcp == nil {
			http.Error(w, "503 - MCP transport not configured", http.StatusServiceUnavailable)
			return
		}
		s.mcp.ServeHTTP(w, r)
	}
}
