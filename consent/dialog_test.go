package consent_test

import (
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-ticktick-mcp/consent"
	"github.com/stretchr/testify/require"
)

func TestRenderApprovalDialog(t *testing.T) {
	w := httptest.NewRecorder()
	err := consent.RenderApprovalDialog(w, consent.DialogData{
		ClientID:       "my-client",
		Scope:          "tasks:read tasks:write",
		CSRFToken:      "csrf-123",
		EncodedRequest: "blob-456",
		ActionPath:     "/authorize",
	}, "https://broker.example.com/authorize?client_id=my-client")
	require.NoError(t, err)

	body := w.Body.String()
	require.Contains(t, body, "my-client")
	require.Contains(t, body, "tasks:read tasks:write")
	require.Contains(t, body, `name="csrf_token" value="csrf-123"`)
	require.Contains(t, body, `name="state" value="blob-456"`)
	require.Contains(t, body, `action="/authorize"`)

	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	csp := w.Header().Get("Content-Security-Policy")
	require.Contains(t, csp, "default-src 'none'")
	require.Contains(t, csp, "form-action 'self' https://broker.example.com")
}

func TestRenderApprovalDialog_EscapesUntrustedValues(t *testing.T) {
	w := httptest.NewRecorder()
	err := consent.RenderApprovalDialog(w, consent.DialogData{
		ClientID:  `<script>alert("x")</script>`,
		Scope:     `"><img src=x>`,
		CSRFToken: "csrf",
	}, "https://broker.example.com/")
	require.NoError(t, err)

	body := w.Body.String()
	require.NotContains(t, body, "<script>alert")
	require.NotContains(t, body, "<img src=x>")
	require.Contains(t, body, "&lt;script&gt;")
}

func TestRenderApprovalDialog_EmptyScopeDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	err := consent.RenderApprovalDialog(w, consent.DialogData{ClientID: "c", CSRFToken: "t"}, "")
	require.NoError(t, err)
	require.Contains(t, w.Body.String(), "default")
}

func TestSanitizeURL(t *testing.T) {
	t.Run("https passes through", func(t *testing.T) {
		require.Equal(t, "https://example.com/path", consent.SanitizeURL("https://example.com/path"))
	})

	t.Run("http passes through", func(t *testing.T) {
		require.Equal(t, "http://example.com", consent.SanitizeURL("http://example.com"))
	})

	t.Run("javascript scheme rejected", func(t *testing.T) {
		require.Equal(t, "#", consent.SanitizeURL("javascript:alert(1)"))
	})

	t.Run("data scheme rejected", func(t *testing.T) {
		require.Equal(t, "#", consent.SanitizeURL("data:text/html,hi"))
	})

	t.Run("unparseable falls back", func(t *testing.T) {
		require.Equal(t, "#", consent.SanitizeURL("http://exa mple.com/%zz"))
	})
}
