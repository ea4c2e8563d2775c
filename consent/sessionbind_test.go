package consent_test

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-ticktick-mcp/consent"
	"github.com/stretchr/testify/require"
)

func TestBindStateToSession(t *testing.T) {
	cookie := consent.BindStateToSession("some-state-token")

	require.Equal(t, "__Host-CONSENTED_STATE", cookie.Name)
	digest := sha256.Sum256([]byte("some-state-token"))
	require.Equal(t, hex.EncodeToString(digest[:]), cookie.Value)
	require.Equal(t, 600, cookie.MaxAge)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestVerifyStateSession(t *testing.T) {
	state := "state-token-abc"

	t.Run("cookie matches state", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/callback", nil)
		r.AddCookie(consent.BindStateToSession(state))
		require.True(t, consent.VerifyStateSession(state, r))
	})

	t.Run("cookie bound to a different state", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/callback", nil)
		r.AddCookie(consent.BindStateToSession("some-other-state"))
		require.False(t, consent.VerifyStateSession(state, r))
	})

	t.Run("absent cookie verifies vacuously", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/callback", nil)
		require.True(t, consent.VerifyStateSession(state, r))
	})
}
