package consent

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	sessionCookieName   = "__Host-CONSENTED_STATE"
	sessionCookieMaxAge = 600 // matches the state token TTL
)

// BindStateToSession derives a session-binding cookie from a state
// token. The cookie holds SHA-256(state) rather than the token itself,
// so a stolen cookie cannot be replayed as a state parameter. SameSite
// is Lax, not Strict: the cookie has to survive the top-level
// navigation redirect back from the upstream provider.
func BindStateToSession(state string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    hashStateHex(state),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionCookieMaxAge,
	}
}

// VerifyStateSession checks the session-binding cookie against the
// state parameter of a callback. A missing cookie verifies vacuously —
// some clients drop cookies across cross-site redirects — but a present
// cookie that does not match the state is always a failure.
func VerifyStateSession(state string, r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return true
	}
	expected := hashStateHex(state)
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(expected)) == 1
}

func hashStateHex(state string) string {
	digest := sha256.Sum256([]byte(state))
	return hex.EncodeToString(digest[:])
}
