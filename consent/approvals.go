package consent

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	approvedCookieName   = "__Host-APPROVED_CLIENTS"
	approvedCookieMaxAge = 30 * 24 * 3600
)

// IsClientApproved reports whether the user has previously consented to
// the given client, according to the signed approved-clients cookie.
// Any parse failure, decode failure, or signature mismatch degrades to
// "not approved" — it never aborts the request, the user simply sees
// the consent dialog again.
func IsClientApproved(r *http.Request, clientID, secret string) bool {
	cookie, err := r.Cookie(approvedCookieName)
	if err != nil {
		return false
	}
	for _, approved := range decodeApprovals(cookie.Value, secret) {
		if approved == clientID {
			return true
		}
	}
	return false
}

// AddApprovedClient records consent for clientID and returns the
// re-signed cookie. The existing list is kept when its signature is
// valid and discarded otherwise; adding an already-present client is a
// no-op on the list (set semantics).
func AddApprovedClient(r *http.Request, clientID, secret string) (*http.Cookie, error) {
	var clientIDs []string
	if cookie, err := r.Cookie(approvedCookieName); err == nil {
		clientIDs = decodeApprovals(cookie.Value, secret)
	}

	found := false
	for _, id := range clientIDs {
		if id == clientID {
			found = true
			break
		}
	}
	if !found {
		clientIDs = append(clientIDs, clientID)
	}

	payload, err := json.Marshal(clientIDs)
	if err != nil {
		return nil, err
	}
	data := base64.RawURLEncoding.EncodeToString(payload)

	return &http.Cookie{
		Name:     approvedCookieName,
		Value:    data + "." + signApprovals(secret, data),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   approvedCookieMaxAge,
	}, nil
}

// decodeApprovals returns the client list carried by the cookie value,
// or nil when the value is malformed or its signature does not verify.
func decodeApprovals(value, secret string) []string {
	data, sig, ok := strings.Cut(value, ".")
	if !ok {
		return nil
	}
	expected := signApprovals(secret, data)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}
	var clientIDs []string
	if err := json.Unmarshal(payload, &clientIDs); err != nil {
		return nil
	}
	return clientIDs
}

func signApprovals(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
