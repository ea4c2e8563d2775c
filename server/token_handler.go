package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jrsteele09/go-ticktick-mcp/oauthmodel"
)

// TokenHandler exchanges a broker authorization code for an access
// token (RFC 6749 §4.1.3).
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenRequest := oauthmodel.ParseTokenRequest(r)

		response, err := s.provider.Token(r.Context(), tokenRequest)
		if err != nil {
			var flowErr *oauthmodel.FlowError
			if errors.As(err, &flowErr) {
				s.writeFlowError(w, flowErr)
				return
			}
			s.writeFlowError(w, oauthmodel.NewFlowError("server_error", "Token exchange failed", http.StatusInternalServerError))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(response)
	}
}
