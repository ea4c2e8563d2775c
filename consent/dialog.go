package consent

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
)

//go:embed templates/approval_dialog.html
var dialogFiles embed.FS

var dialogTmpl = template.Must(template.ParseFS(dialogFiles, "templates/approval_dialog.html"))

// DialogData carries the values interpolated into the approval dialog.
// ClientID and Scope are caller-controlled; html/template entity-escapes
// every field when the template executes.
type DialogData struct {
	ClientID       string
	Scope          string
	CSRFToken      string
	EncodedRequest string
	ActionPath     string
}

// RenderApprovalDialog writes the consent page. The response carries a
// restrictive content-security policy: no scripts, inline style only,
// and form-action limited to 'self' plus the request's own origin.
func RenderApprovalDialog(w http.ResponseWriter, data DialogData, requestURL string) error {
	if data.Scope == "" {
		data.Scope = "default"
	}
	if data.ActionPath == "" {
		data.ActionPath = "/authorize"
	}

	origin := ""
	if u, err := url.Parse(requestURL); err == nil && u.Scheme != "" && u.Host != "" {
		origin = u.Scheme + "://" + u.Host
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy",
		fmt.Sprintf("default-src 'none'; style-src 'unsafe-inline'; form-action 'self' %s", origin))

	if err := dialogTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("[RenderApprovalDialog] execute template: %w", err)
	}
	return nil
}

// SanitizeURL returns the URL unchanged when it parses as absolute
// http(s), and the neutral placeholder "#" otherwise. Every URL echoed
// into rendered HTML must pass through here first.
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "#"
	}
	return u.String()
}
