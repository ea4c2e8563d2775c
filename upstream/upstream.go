// Package upstream talks to the identity provider the broker
// authenticates users against. GitHub is the default; any OIDC issuer
// can be used instead via discovery.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubUserURL = "https://api.github.com/user"

// githubScopes is the minimal scope set needed to read the login, name,
// and email of the authenticated user.
var githubScopes = []string{"read:user", "user:email"}

// Identity is what the broker needs to know about the upstream user.
// It is fetched once per callback and never persisted.
type Identity struct {
	Login string
	Name  string
	Email string
}

// Provider wraps the upstream authorize/token/user-info endpoints.
type Provider struct {
	cfg          *oauth2.Config
	userInfoURL  string
	oidcProvider *oidc.Provider
	httpClient   *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient sets the HTTP client used for token exchange and
// identity fetches. Timeouts are the client's responsibility; the
// provider issues no retries.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = client
	}
}

// WithEndpoints overrides the authorize, token, and user-info URLs.
// Used by tests to point the provider at a local stub.
func WithEndpoints(authURL, tokenURL, userInfoURL string) Option {
	return func(p *Provider) {
		p.cfg.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
		p.userInfoURL = userInfoURL
	}
}

// NewGitHub creates a Provider for GitHub OAuth.
func NewGitHub(clientID, clientSecret, redirectURL string, options ...Option) *Provider {
	p := &Provider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     github.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       githubScopes,
		},
		userInfoURL: githubUserURL,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// NewOIDC creates a Provider for an arbitrary OIDC issuer, discovering
// its endpoints from the issuer's well-known configuration.
func NewOIDC(ctx context.Context, issuer, clientID, clientSecret, redirectURL string, scopes []string, options ...Option) (*Provider, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("[upstream NewOIDC] discover issuer %q: %w", issuer, err)
	}
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	p := &Provider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  redirectURL,
			Scopes:       scopes,
		},
		oidcProvider: provider,
	}
	for _, opt := range options {
		opt(p)
	}
	return p, nil
}

// AuthorizeURL builds the upstream authorization URL carrying the
// broker's state token.
func (p *Provider) AuthorizeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

// Exchange swaps an authorization code for an upstream access token.
// A provider-reported error satisfies IsUpstreamRejection; anything
// else is a transport failure.
func (p *Provider) Exchange(ctx context.Context, code string) (string, error) {
	token, err := p.cfg.Exchange(p.requestContext(ctx), code)
	if err != nil {
		return "", fmt.Errorf("[upstream Exchange] token exchange: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("[upstream Exchange] empty access token in response")
	}
	return token.AccessToken, nil
}

// IsUpstreamRejection reports whether err means the provider itself
// rejected the exchange (an OAuth error payload) rather than the call
// failing in transit.
func IsUpstreamRejection(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	return errors.As(err, &retrieveErr)
}

// FetchIdentity resolves the authenticated user behind an upstream
// access token.
func (p *Provider) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	if p.oidcProvider != nil {
		return p.fetchOIDCIdentity(ctx, accessToken)
	}
	return p.fetchGitHubIdentity(ctx, accessToken)
}

func (p *Provider) fetchGitHubIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("[upstream FetchIdentity] build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ticktick-mcp-server")

	resp, err := p.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("[upstream FetchIdentity] user request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("[upstream FetchIdentity] user endpoint returned %d: %s", resp.StatusCode, body)
	}

	var user struct {
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("[upstream FetchIdentity] decode user: %w", err)
	}
	if user.Login == "" {
		return nil, errors.New("[upstream FetchIdentity] user response missing login")
	}
	return &Identity{Login: user.Login, Name: user.Name, Email: user.Email}, nil
}

func (p *Provider) fetchOIDCIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	userInfo, err := p.oidcProvider.UserInfo(p.requestContext(ctx), source)
	if err != nil {
		return nil, fmt.Errorf("[upstream FetchIdentity] userinfo: %w", err)
	}

	var claims struct {
		PreferredUsername string `json:"preferred_username"`
		Name              string `json:"name"`
	}
	if err := userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("[upstream FetchIdentity] decode claims: %w", err)
	}

	login := claims.PreferredUsername
	if login == "" {
		login = userInfo.Email
	}
	if login == "" {
		login = userInfo.Subject
	}
	return &Identity{Login: login, Name: claims.Name, Email: userInfo.Email}, nil
}

func (p *Provider) client() *http.Client {
	if p.httpClient != nil {
		return p.httpClient
	}
	return http.DefaultClient
}

// requestContext threads the configured HTTP client through the oauth2
// and oidc libraries.
func (p *Provider) requestContext(ctx context.Context) context.Context {
	if p.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	return ctx
}
