package gh

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Account is one gh-authenticated identity on a host.
type Account struct {
	Host   string
	Login  string
	Active bool
}

// ID returns the stable identity key used by all preference maps.
func (a Account) ID() string {
	return a.Host + "|" + a.Login
}

// DefaultDisplayName is the fallback display name when no label is set.
func (a Account) DefaultDisplayName() string {
	return a.Login + "@" + a.Host
}

var caseFold = collate.New(language.Und, collate.IgnoreCase)

// sortAccounts orders accounts active-first, then by host and login
// case-insensitively. Ties between equal-folded strings fall back to the
// raw bytes so the order is total: no two distinct accounts compare equal.
func sortAccounts(accounts []Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		a, b := accounts[i], accounts[j]
		if a.Active != b.Active {
			return a.Active
		}
		if c := compareFold(a.Host, b.Host); c != 0 {
			return c < 0
		}
		return compareFold(a.Login, b.Login) < 0
	})
}

func compareFold(a, b string) int {
	if c := caseFold.CompareString(a, b); c != 0 {
		return c
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
