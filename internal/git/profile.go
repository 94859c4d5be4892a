// Package git applies and discovers git identity (user.name/user.email)
// configuration.
package git

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// IdentityProfile is a display name / email pair applied to the global git
// config when an account is activated.
type IdentityProfile struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// IsEmpty reports whether both fields are empty after trimming.
func (p IdentityProfile) IsEmpty() bool {
	return strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Email) == ""
}

// DisplayLabel renders the profile for lists: "Name <email>", or whichever
// field is non-empty.
func (p IdentityProfile) DisplayLabel() string {
	name := strings.TrimSpace(p.Name)
	email := strings.TrimSpace(p.Email)
	switch {
	case name != "" && email != "":
		return name + " <" + email + ">"
	case name != "":
		return name
	default:
		return email
	}
}

var labelFold = collate.New(language.Und, collate.IgnoreCase)

// SortProfiles orders profiles by display label, case-insensitively.
func SortProfiles(profiles []IdentityProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		return labelFold.CompareString(profiles[i].DisplayLabel(), profiles[j].DisplayLabel()) < 0
	})
}
