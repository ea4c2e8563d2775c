package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-ticktick-mcp/oauthmodel"
	"github.com/jrsteele09/go-ticktick-mcp/provider"
)

// RegisterHandler implements dynamic client registration (RFC 7591).
// MCP clients use it to obtain credentials before starting the
// authorization flow.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var registration provider.RegistrationRequest
		if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
			s.writeFlowError(w, oauthmodel.NewFlowError("invalid_client_metadata", "Request body is not valid JSON", http.StatusBadRequest))
			return
		}

		if len(registration.RedirectURIs) == 0 {
			s.writeFlowError(w, oauthmodel.NewFlowError("invalid_client_metadata", "redirect_uris is required", http.StatusBadRequest))
			return
		}

		response, err := s.provider.Clients().Register(r.Context(), registration)
		if err != nil {
			s.writeFlowError(w, oauthmodel.NewFlowError("server_error", "Failed to register client", http.StatusInternalServerError))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(response)
	}
}
