package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-ticktick-mcp/consent"
	"github.com/jrsteele09/go-ticktick-mcp/oauthmodel"
)

// AuthorizeGetHandler starts an authorization flow. Clients the user
// has previously approved skip straight to the upstream provider;
// everyone else gets the approval dialog.
func (s *Server) AuthorizeGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authRequest := s.provider.ParseAuthRequest(r)
		if authRequest.ClientID == "" {
			s.writeFlowError(w, oauthmodel.ErrMissingClientID)
			return
		}

		if consent.IsClientApproved(r, authRequest.ClientID, s.cookieSecret) {
			s.redirectToUpstream(w, r, authRequest)
			return
		}

		encodedRequest, err := authRequest.Encode()
		if err != nil {
			s.writeFlowError(w, oauthmodel.NewFlowError("server_error", "Failed to encode authorization request", http.StatusInternalServerError))
			return
		}

		csrfToken, csrfCookie := consent.IssueCSRF()
		http.SetCookie(w, csrfCookie)

		err = consent.RenderApprovalDialog(w, consent.DialogData{
			ClientID:       authRequest.ClientID,
			Scope:          authRequest.ScopeString(),
			CSRFToken:      csrfToken,
			EncodedRequest: encodedRequest,
			ActionPath:     s.config.GetAuthorizePath(),
		}, s.config.GetBaseURL())
		if err != nil {
			log.Error().Err(err).Msg("render approval dialog")
		}
	}
}

// AuthorizePostHandler handles the approval dialog submission. Approval
// records the client in the signed approvals cookie and continues to
// the upstream provider; anything else ends the flow.
func (s *Server) AuthorizePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			s.writeFlowError(w, oauthmodel.NewFlowError("invalid_request", "Malformed form body", http.StatusBadRequest))
			return
		}

		if !consent.ValidateCSRF(r.FormValue("csrf_token"), r) {
			s.writeFlowError(w, oauthmodel.ErrCSRFInvalid)
			return
		}

		if r.FormValue("action") != "approve" {
			s.writeFlowError(w, oauthmodel.ErrConsentDenied)
			return
		}

		authRequest, err := oauthmodel.DecodeAuthRequest(r.FormValue("state"))
		if err != nil || authRequest.ClientID == "" {
			s.writeFlowError(w, oauthmodel.NewFlowError("invalid_request", "Malformed authorization request", http.StatusBadRequest))
			return
		}

		approvalCookie, err := consent.AddApprovedClient(r, authRequest.ClientID, s.cookieSecret)
		if err != nil {
			s.writeFlowError(w, oauthmodel.NewFlowError("server_error", "Failed to record approval", http.StatusInternalServerError))
			return
		}
		http.SetCookie(w, approvalCookie)

		s.redirectToUpstream(w, r, authRequest)
	}
}

// redirectToUpstream persists the authorization request as ephemeral
// state, binds the state token to the browser session, and sends the
// user to the upstream provider.
func (s *Server) redirectToUpstream(w http.ResponseWriter, r *http.Request, authRequest *oauthmodel.AuthRequest) {
	state, err := s.flow.Create(r.Context(), authRequest)
	if err != nil {
		log.Error().Err(err).Msg("create flow state")
		s.writeFlowError(w, oauthmodel.NewFlowError("server_error", "Failed to persist authorization state", http.StatusInternalServerError))
		return
	}

	http.SetCookie(w, consent.BindStateToSession(state))
	http.Redirect(w, r, s.upstream.AuthorizeURL(state), http.StatusFound)
}

func (s *Server) writeFlowError(w http.ResponseWriter, flowErr *oauthmodel.FlowError) {
	flowErr.WriteJSON(w)
}
