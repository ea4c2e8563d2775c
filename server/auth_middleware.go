package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-ticktick-mcp/oauthmodel"
	"github.com/jrsteele09/go-ticktick-mcp/provider"
)

// RequireAuth validates a Bearer access token minted by the broker and
// injects the token's props bundle into the request context.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			rawToken, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || rawToken == "" {
				s.unauthorized(w, "missing bearer token")
				return
			}

			_, props, err := s.provider.Tokens().Verify(r.Context(), rawToken)
			if err != nil {
				s.unauthorized(w, "token is invalid or expired")
				return
			}

			next(w, r.WithContext(provider.WithProps(r.Context(), props)))
		}
	}
}

func (s *Server) unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	oauthmodel.NewFlowError("invalid_token", description, http.StatusUnauthorized).WriteJSON(w)
}
