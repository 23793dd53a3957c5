package types

import "github.com/samber/lo"

// RoleSet is the set of role names a caller holds, as extracted from the
// bearer token. An empty set grants nothing (fail-closed).
type RoleSet []string

// HasAny reports whether the set intersects wanted.
func (r RoleSet) HasAny(wanted []string) bool {
	return lo.Some(r, wanted)
}
