package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-ticktick-mcp/upstream"
	"github.com/stretchr/testify/require"
)

// stubUpstream fakes the provider's token and user endpoints.
func stubUpstream(t *testing.T, tokenHandler, userHandler http.HandlerFunc) *upstream.Provider {
	t.Helper()
	mux := http.NewServeMux()
	if tokenHandler != nil {
		mux.HandleFunc("/login/oauth/access_token", tokenHandler)
	}
	if userHandler != nil {
		mux.HandleFunc("/user", userHandler)
	}
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return upstream.NewGitHub("gh-client", "gh-secret", "https://broker.example.com/callback",
		upstream.WithEndpoints(ts.URL+"/login/oauth/authorize", ts.URL+"/login/oauth/access_token", ts.URL+"/user"),
		upstream.WithHTTPClient(ts.Client()),
	)
}

func TestAuthorizeURL(t *testing.T) {
	p := upstream.NewGitHub("gh-client", "gh-secret", "https://broker.example.com/callback")

	raw := p.AuthorizeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "github.com", u.Host)

	q := u.Query()
	require.Equal(t, "gh-client", q.Get("client_id"))
	require.Equal(t, "state-123", q.Get("state"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "https://broker.example.com/callback", q.Get("redirect_uri"))
	require.Contains(t, q.Get("scope"), "read:user")
}

func TestExchange(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := stubUpstream(t,
			func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				require.Equal(t, "good-code", r.FormValue("code"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"access_token":"gh-token","token_type":"bearer"}`))
			},
			nil,
		)

		token, err := p.Exchange(context.Background(), "good-code")
		require.NoError(t, err)
		require.Equal(t, "gh-token", token)
	})

	t.Run("provider rejects the code", func(t *testing.T) {
		p := stubUpstream(t,
			func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"bad_verification_code"}`))
			},
			nil,
		)

		_, err := p.Exchange(context.Background(), "bad-code")
		require.Error(t, err)
		require.True(t, upstream.IsUpstreamRejection(err))
	})

	t.Run("transport failure", func(t *testing.T) {
		p := upstream.NewGitHub("gh-client", "gh-secret", "https://broker.example.com/callback",
			upstream.WithEndpoints("http://127.0.0.1:1/auth", "http://127.0.0.1:1/token", "http://127.0.0.1:1/user"))

		_, err := p.Exchange(context.Background(), "any-code")
		require.Error(t, err)
		require.False(t, upstream.IsUpstreamRejection(err))
	})
}

func TestFetchIdentity(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := stubUpstream(t, nil, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"login":"octocat","name":"The Octocat","email":"octo@example.com"}`))
		})

		identity, err := p.FetchIdentity(context.Background(), "gh-token")
		require.NoError(t, err)
		require.Equal(t, &upstream.Identity{Login: "octocat", Name: "The Octocat", Email: "octo@example.com"}, identity)
	})

	t.Run("non-success status", func(t *testing.T) {
		p := stubUpstream(t, nil, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := p.FetchIdentity(context.Background(), "stale-token")
		require.Error(t, err)
	})

	t.Run("missing login", func(t *testing.T) {
		p := stubUpstream(t, nil, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		})

		_, err := p.FetchIdentity(context.Background(), "gh-token")
		require.Error(t, err)
	})
}
