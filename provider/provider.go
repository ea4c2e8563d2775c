// Package provider implements the broker's own OAuth surface: parsing
// incoming authorization requests, minting single-use authorization
// codes when an authorization completes, exchanging those codes for
// broker access tokens, and dynamic client registration.
package provider

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-ticktick-mcp/internal/kv"
	"github.com/jrsteele09/go-ticktick-mcp/oauthmodel"
)

// CompleteRequest carries everything the flow controller knows when an
// authorization succeeds: the original client request, the upstream
// user it resolved to, display metadata, and the props bundle handed to
// downstream tooling.
type CompleteRequest struct {
	Request  *oauthmodel.AuthRequest
	UserID   string
	Metadata map[string]string
	Scope    []string
	Props    Props
}

// Authorizer is the authorization-provider abstraction the flow
// controller plugs into. The controller only ever parses a request and
// completes an authorization; everything else is the provider's
// business.
type Authorizer interface {
	ParseAuthRequest(r *http.Request) *oauthmodel.AuthRequest
	CompleteAuthorization(ctx context.Context, req CompleteRequest) (string, error)
}

// Provider is the concrete Authorizer: a code-grant OAuth provider
// backed by the key/value store.
type Provider struct {
	clients *ClientRegistry
	grants  grantStore
	tokens  *TokenService
}

var _ Authorizer = (*Provider)(nil)

// New creates a Provider. secret signs access tokens, issuer names the
// broker in them, and expiry bounds their lifetime.
func New(backend kv.Store, secret, issuer string, expiry time.Duration) *Provider {
	return &Provider{
		clients: NewClientRegistry(backend),
		grants:  grantStore{kv: backend},
		tokens:  NewTokenService(secret, issuer, expiry, backend),
	}
}

// Clients exposes the client registry to the registration endpoint.
func (p *Provider) Clients() *ClientRegistry { return p.clients }

// Tokens exposes the token service to the bearer-auth middleware.
func (p *Provider) Tokens() *TokenService { return p.tokens }

// ParseAuthRequest parses an incoming authorization request from its
// query parameters. Validation happens later: the flow controller
// rejects a missing client id, and CompleteAuthorization checks the
// redirect target against the client's registration.
func (p *Provider) ParseAuthRequest(r *http.Request) *oauthmodel.AuthRequest {
	return oauthmodel.ParseAuthRequest(r)
}

// CompleteAuthorization mints a single-use authorization code for a
// finished flow and returns the URI to send the user's browser to.
func (p *Provider) CompleteAuthorization(ctx context.Context, req CompleteRequest) (string, error) {
	client, err := p.clients.Get(ctx, req.Request.ClientID)
	if err != nil {
		return "", err
	}
	if !client.RedirectAllowed(req.Request.RedirectURI) {
		return "", oauthmodel.NewFlowError("invalid_redirect_uri",
			"redirect_uri is not registered for this client", http.StatusBadRequest)
	}

	code, err := p.grants.create(ctx, &Grant{
		Request:   req.Request,
		UserID:    req.UserID,
		Scope:     req.Scope,
		Metadata:  req.Metadata,
		Props:     req.Props,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	redirect, err := url.Parse(req.Request.RedirectURI)
	if err != nil {
		return "", oauthmodel.NewFlowError("invalid_redirect_uri",
			"redirect_uri does not parse", http.StatusBadRequest)
	}
	q := redirect.Query()
	q.Set("code", code)
	if req.Request.State != "" {
		q.Set("state", req.Request.State)
	}
	redirect.RawQuery = q.Encode()
	return redirect.String(), nil
}

// Token redeems an authorization code for an access token. Errors are
// *oauthmodel.FlowError values ready for the HTTP layer.
func (p *Provider) Token(ctx context.Context, req oauthmodel.TokenRequest) (*TokenResponse, error) {
	if req.GrantType != "authorization_code" {
		return nil, oauthmodel.ErrUnsupportedGrant
	}

	client, err := p.clients.Get(ctx, req.ClientID)
	if err != nil {
		return nil, oauthmodel.ErrInvalidClient
	}

	if client.Public() {
		if req.CodeVerifier == "" {
			return nil, oauthmodel.ErrInvalidCodeVerifier
		}
	} else if !client.CheckSecret(req.ClientSecret) {
		return nil, oauthmodel.ErrInvalidClient
	}

	grant, err := p.grants.redeem(ctx, req.Code)
	if err != nil {
		return nil, oauthmodel.ErrInvalidGrant
	}

	// The grant is gone from the store at this point; every failure
	// below permanently invalidates the code, as RFC 6749 requires.
	if grant.Request.ClientID != req.ClientID {
		return nil, oauthmodel.ErrInvalidGrant
	}
	if req.RedirectURI != grant.Request.RedirectURI {
		return nil, oauthmodel.ErrInvalidRedirectURI
	}
	if grant.Request.CodeChallenge != "" || req.CodeVerifier != "" {
		if !verifyPKCE(grant.Request.CodeChallenge, grant.Request.CodeChallengeMethod, req.CodeVerifier) {
			return nil, oauthmodel.ErrInvalidCodeVerifier
		}
	}

	return p.tokens.Mint(ctx, grant)
}

// verifyPKCE checks a code verifier against the challenge from the
// authorization request. S256 is the default method; "plain" is
// accepted for compatibility.
func verifyPKCE(challenge, method, verifier string) bool {
	if challenge == "" || verifier == "" {
		return false
	}
	switch method {
	case "plain":
		return subtle.ConstantTimeCompare([]byte(challenge), []byte(verifier)) == 1
	case "", "S256":
		digest := sha256.Sum256([]byte(verifier))
		derived := base64.RawURLEncoding.EncodeToString(digest[:])
		return subtle.ConstantTimeCompare([]byte(challenge), []byte(derived)) == 1
	}
	return false
}

type propsContextKey struct{}

// WithProps attaches a verified token's props bundle to a request
// context.
func WithProps(ctx context.Context, props *Props) context.Context {
	return context.WithValue(ctx, propsContextKey{}, props)
}

// PropsFromContext retrieves the props bundle stored by WithProps.
func PropsFromContext(ctx context.Context) (*Props, bool) {
	props, ok := ctx.Value(propsContextKey{}).(*Props)
	return props, ok
}
