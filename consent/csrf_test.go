package consent_test

import (
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-ticktick-mcp/consent"
	"github.com/stretchr/testify/require"
)

func TestIssueCSRF(t *testing.T) {
	token, cookie := consent.IssueCSRF()

	require.NotEmpty(t, token)
	require.Equal(t, "__Host-CSRF_TOKEN", cookie.Name)
	require.Equal(t, token, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, "/", cookie.Path)
	require.Zero(t, cookie.MaxAge, "CSRF cookie must be session-scoped")

	otherToken, _ := consent.IssueCSRF()
	require.NotEqual(t, token, otherToken)
}

func TestValidateCSRF(t *testing.T) {
	token, cookie := consent.IssueCSRF()

	t.Run("matching token and cookie", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/authorize", nil)
		r.AddCookie(cookie)
		require.True(t, consent.ValidateCSRF(token, r))
	})

	t.Run("mismatched token", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/authorize", nil)
		r.AddCookie(cookie)
		require.False(t, consent.ValidateCSRF("some-other-token", r))
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/authorize", nil)
		require.False(t, consent.ValidateCSRF(token, r))
	})

	t.Run("missing form token", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/authorize", nil)
		r.AddCookie(cookie)
		require.False(t, consent.ValidateCSRF("", r))
	})
}
