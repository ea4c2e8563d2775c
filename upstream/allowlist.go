package upstream

import "strings"

// AllowList is the set of upstream login handles permitted to complete
// an authorization, lowercased for case-insensitive matching.
type AllowList []string

// NewAllowList parses a comma-separated allow-list from configuration.
// Entries are trimmed and lowercased; empty entries are dropped.
func NewAllowList(csv string) AllowList {
	var list AllowList
	for _, entry := range strings.Split(csv, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			list = append(list, entry)
		}
	}
	return list
}

// Allows reports whether login is on the list. An empty list allows
// nobody: the broker is deny-by-default.
func (a AllowList) Allows(login string) bool {
	login = strings.ToLower(login)
	for _, allowed := range a {
		if allowed == login {
			return true
		}
	}
	return false
}

// IsLoginAllowed is the one-shot form used where an AllowList is not
// kept around.
func IsLoginAllowed(login, allowedLogins string) bool {
	return NewAllowList(allowedLogins).Allows(login)
}
