package consent_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrsteele09/go-ticktick-mcp/consent"
	"github.com/stretchr/testify/require"
)

const ledgerSecret = "test-cookie-secret"

func requestWithCookie(cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest("GET", "/authorize", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	return r
}

func TestApprovedClients_RoundTrip(t *testing.T) {
	r := requestWithCookie(nil)
	require.False(t, consent.IsClientApproved(r, "client-a", ledgerSecret))

	cookie, err := consent.AddApprovedClient(r, "client-a", ledgerSecret)
	require.NoError(t, err)
	require.Equal(t, "__Host-APPROVED_CLIENTS", cookie.Name)
	require.Equal(t, 30*24*3600, cookie.MaxAge)

	r = requestWithCookie(cookie)
	require.True(t, consent.IsClientApproved(r, "client-a", ledgerSecret))
	require.False(t, consent.IsClientApproved(r, "client-b", ledgerSecret))

	// Second client accumulates without dropping the first.
	cookie, err = consent.AddApprovedClient(r, "client-b", ledgerSecret)
	require.NoError(t, err)
	r = requestWithCookie(cookie)
	require.True(t, consent.IsClientApproved(r, "client-a", ledgerSecret))
	require.True(t, consent.IsClientApproved(r, "client-b", ledgerSecret))
}

func TestAddApprovedClient_Idempotent(t *testing.T) {
	r := requestWithCookie(nil)
	cookie, err := consent.AddApprovedClient(r, "client-a", ledgerSecret)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		cookie, err = consent.AddApprovedClient(requestWithCookie(cookie), "client-a", ledgerSecret)
		require.NoError(t, err)
	}

	// The encoded payload holds the id exactly once regardless of how
	// many times it was added.
	data, _, ok := strings.Cut(cookie.Value, ".")
	require.True(t, ok)
	first, err := consent.AddApprovedClient(requestWithCookie(nil), "client-a", ledgerSecret)
	require.NoError(t, err)
	firstData, _, _ := strings.Cut(first.Value, ".")
	require.Equal(t, firstData, data)
}

func TestIsClientApproved_TamperedCookie(t *testing.T) {
	cookie, err := consent.AddApprovedClient(requestWithCookie(nil), "client-a", ledgerSecret)
	require.NoError(t, err)

	// Flip one byte of the encoded payload.
	tampered := *cookie
	value := []byte(cookie.Value)
	if value[0] == 'A' {
		value[0] = 'B'
	} else {
		value[0] = 'A'
	}
	tampered.Value = string(value)

	r := requestWithCookie(&tampered)
	require.False(t, consent.IsClientApproved(r, "client-a", ledgerSecret))
}

func TestIsClientApproved_WrongSecret(t *testing.T) {
	cookie, err := consent.AddApprovedClient(requestWithCookie(nil), "client-a", ledgerSecret)
	require.NoError(t, err)

	r := requestWithCookie(cookie)
	require.False(t, consent.IsClientApproved(r, "client-a", "rotated-secret"))
}

func TestAddApprovedClient_InvalidExistingCookie(t *testing.T) {
	garbage := &http.Cookie{Name: "__Host-APPROVED_CLIENTS", Value: "not-a-signed-list"}

	// An unverifiable ledger degrades to an empty list rather than an error.
	cookie, err := consent.AddApprovedClient(requestWithCookie(garbage), "client-a", ledgerSecret)
	require.NoError(t, err)

	r := requestWithCookie(cookie)
	require.True(t, consent.IsClientApproved(r, "client-a", ledgerSecret))
}
