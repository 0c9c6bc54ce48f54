// Package actors resolves activity-record logins into review roles.
// Role sets are injected per decision run and never mutated here
package actors

import (
	"strings"

	"golang.org/x/text/cases"
)

// Role classifies an actor relative to a pull request
type Role uint8

const (
	// RoleNone means the login resolved to neither set
	RoleNone Role = iota
	// RoleAuthor means the login is credited on the touched documents or opened the PR
	RoleAuthor
	// RoleEditor means the login is in the editor roster
	RoleEditor
)

// String returns the wire form of a Role
func (r Role) String() string {
	switch r {
	case RoleEditor:
		return "editor"
	case RoleAuthor:
		return "author"
	default:
		return "none"
	}
}

// BotSuffix is the login marker GitHub appends to app accounts
const BotSuffix = "[bot]"

var folder = cases.Fold()

// Fold normalizes a login for caseless comparison
func Fold(login string) string {
	return folder.String(strings.TrimSpace(login))
}

// IsBot reports whether a login belongs to an automated account
func IsBot(login string) bool {
	return strings.HasSuffix(Fold(login), BotSuffix)
}

// Usable reports whether a login can participate in role resolution at all.
// Empty and bot logins are unusable and must be dropped before counting
func Usable(login string) bool {
	return strings.TrimSpace(login) != "" && !IsBot(login)
}

// Set is a folded login set
type Set map[string]struct{}

// NewSet folds and collects logins, skipping blanks
func NewSet(logins ...string) Set {
	s := make(Set, len(logins))
	for _, l := range logins {
		f := Fold(l)
		if f == "" {
			continue
		}
		s[f] = struct{}{}
	}
	return s
}

// Has reports folded membership
func (s Set) Has(login string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[Fold(login)]
	return ok
}

// With returns a copy of s extended with extra logins (blanks skipped)
func (s Set) With(logins ...string) Set {
	out := make(Set, len(s)+len(logins))
	for k := range s {
		out[k] = struct{}{}
	}
	for _, l := range logins {
		f := Fold(l)
		if f == "" {
			continue
		}
		out[f] = struct{}{}
	}
	return out
}

// Logins returns the folded members, order unspecified
func (s Set) Logins() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// Resolver maps logins to roles for one decision run
type Resolver struct {
	editors Set
	authors Set
}

// NewResolver builds a Resolver over pre-folded sets
func NewResolver(editors, authors Set) Resolver {
	return Resolver{editors: editors, authors: authors}
}

// Resolve returns the role for login and whether the login was usable.
// ok=false covers empty and bot logins, which are dropped upstream so
// they never appear in counts. Editor membership wins over author
// membership when a login is in both sets
func (r Resolver) Resolve(login string) (Role, bool) {
	if !Usable(login) {
		return RoleNone, false
	}
	if r.editors.Has(login) {
		return RoleEditor, true
	}
	if r.authors.Has(login) {
		return RoleAuthor, true
	}
	return RoleNone, true
}
