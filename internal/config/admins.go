package config

import "strings"

// AdminSet is the email allowlist for moderation. Emails are stored trimmed and lowercased.
type AdminSet map[string]struct{}

func NewAdminSet(emails []string) AdminSet {
	set := make(AdminSet, len(emails))
	for _, e := range emails {
		if e = NormalizeEmail(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s AdminSet) IsAdmin(email string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[NormalizeEmail(email)]
	return ok
}
