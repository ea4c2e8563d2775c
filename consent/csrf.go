// Package consent implements the client-held state of the approval
// step: the anti-forgery token for the consent form, the session
// binding that ties a callback to the browser that approved it, and the
// signed ledger of previously approved clients.
package consent

import (
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
)

// Cookie names use the __Host- prefix, which browsers only accept over
// HTTPS with Path=/ and no Domain attribute, locking the cookies to the
// broker's own host.
const csrfCookieName = "__Host-CSRF_TOKEN"

// IssueCSRF returns a fresh anti-forgery token together with the cookie
// that carries it. The token goes into a hidden field of the consent
// form; the cookie is session-scoped and SameSite=Strict so only a
// same-site form submission can echo it back.
func IssueCSRF() (string, *http.Cookie) {
	token := uuid.NewString()
	cookie := &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
	return token, cookie
}

// ValidateCSRF reports whether the submitted form token matches the
// CSRF cookie on the request. Absence of either, or any mismatch,
// fails validation; it never panics or returns an error.
func ValidateCSRF(formToken string, r *http.Request) bool {
	if formToken == "" {
		return false
	}
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(formToken), []byte(cookie.Value)) == 1
}
