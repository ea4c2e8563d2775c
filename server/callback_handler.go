package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-ticktick-mcp/consent"
	"github.com/jrsteele09/go-ticktick-mcp/oauthmodel"
	"github.com/jrsteele09/go-ticktick-mcp/provider"
	"github.com/jrsteele09/go-ticktick-mcp/upstream"
)

// CallbackHandler completes the flow when the upstream provider sends
// the user back. It consumes the single-use state, verifies the
// session binding, exchanges the upstream code, checks the allow-list,
// and finally redirects to the client with a broker authorization code.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")
		if code == "" || state == "" {
			s.writeFlowError(w, oauthmodel.ErrMissingParams)
			return
		}

		// Consuming first means a replayed callback fails here even
		// when everything else about it is valid.
		authRequest, err := s.flow.Consume(r.Context(), state)
		if err != nil {
			s.writeFlowError(w, oauthmodel.ErrStateInvalid)
			return
		}

		if !consent.VerifyStateSession(state, r) {
			s.writeFlowError(w, oauthmodel.ErrStateMismatch)
			return
		}

		upstreamToken, err := s.upstream.Exchange(r.Context(), code)
		if err != nil {
			if upstream.IsUpstreamRejection(err) {
				s.writeFlowError(w, oauthmodel.ErrUpstreamDenied)
				return
			}
			log.Error().Err(err).Msg("upstream token exchange")
			s.writeFlowError(w, oauthmodel.ErrUpstreamFailure)
			return
		}

		identity, err := s.upstream.FetchIdentity(r.Context(), upstreamToken)
		if err != nil {
			log.Error().Err(err).Msg("fetch upstream identity")
			s.writeFlowError(w, oauthmodel.ErrIdentityFetch)
			return
		}

		if !s.allowList.Allows(identity.Login) {
			s.writeFlowError(w, oauthmodel.ErrNotAllowed)
			return
		}

		redirectTo, err := s.provider.CompleteAuthorization(r.Context(), provider.CompleteRequest{
			Request: authRequest,
			UserID:  identity.Login,
			Metadata: map[string]string{
				"label": identity.Name,
			},
			Scope: authRequest.Scope,
			Props: provider.Props{
				Login:       identity.Login,
				Name:        identity.Name,
				Email:       identity.Email,
				AccessToken: upstreamToken,
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("complete authorization")
			s.writeFlowError(w, oauthmodel.NewFlowError("server_error", "Failed to complete authorization", http.StatusInternalServerError))
			return
		}

		http.Redirect(w, r, redirectTo, http.StatusFound)
	}
}
