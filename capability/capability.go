// Package capability models the permission strings that gate workflow
// transitions. A Capability is opaque to the engine; the "<entity>.<verb>.<scope>"
// convention is enforced by whoever assembles a caller's grant, not here.
package capability

import (
	"slices"
	"strings"
)

// Scope suffixes used by the platform's capability convention.
// "own" gates actions on the actor's own records, "global" gates
// actions on anyone's records.
const (
	ScopeOwn    = "own"
	ScopeGlobal = "global"
)

// Capability is a single opaque permission string, e.g. "timesheet.approve.global".
type Capability string

// String returns the raw capability string.
func (c Capability) String() string {
	return string(c)
}

// Of builds a capability from the platform's entity/verb/scope convention.
func Of(entity, verb, scope string) Capability {
	return Capability(entity + "." + verb + "." + scope)
}

// A Set is a collection of unique capabilities. The zero value is an
// empty, usable set for read operations; use New to build one with members.
type Set struct {
	members map[Capability]struct{}
}

// New creates a set holding the given capabilities.
func New(caps ...Capability) Set {
	s := Set{members: make(map[Capability]struct{}, len(caps))}
	for _, c := range caps {
		s.members[c] = struct{}{}
	}

	return s
}

// Parse builds a set from raw strings, skipping empty entries. Useful when
// the grant arrives from an external permission store as []string.
func Parse(raw []string) Set {
	s := Set{members: make(map[Capability]struct{}, len(raw))}

	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}

		s.members[Capability(r)] = struct{}{}
	}

	return s
}

// Add adds a capability to the set.
func (s *Set) Add(c Capability) {
	if s.members == nil {
		s.members = make(map[Capability]struct{})
	}

	s.members[c] = struct{}{}
}

// Contains reports whether the set holds the given capability.
func (s Set) Contains(c Capability) bool {
	_, ok := s.members[c]

	return ok
}

// Size returns the number of capabilities in the set.
func (s Set) Size() int {
	return len(s.members)
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return len(s.members) == 0
}

// Intersects reports whether the two sets share at least one capability.
// This is the ANY-of check used for transition authorization: a transition
// requiring [review.global, approve.global] is satisfiable by holding
// either one.
func (s Set) Intersects(other Set) bool {
	// Iterate over the smaller set.
	small, large := s, other
	if len(large.members) < len(small.members) {
		small, large = large, small
	}

	for c := range small.members {
		if large.Contains(c) {
			return true
		}
	}

	return false
}

// Intersection returns a new set containing only capabilities present in both.
func (s Set) Intersection(other Set) Set {
	out := New()

	for c := range s.members {
		if other.Contains(c) {
			out.Add(c)
		}
	}

	return out
}

// Union returns a new set containing all capabilities from both sets.
func (s Set) Union(other Set) Set {
	out := New()

	for c := range s.members {
		out.Add(c)
	}

	for c := range other.members {
		out.Add(c)
	}

	return out
}

// Entries returns the capabilities in lexical order. The order is stable so
// callers may log or render it deterministically.
func (s Set) Entries() []Capability {
	out := make([]Capability, 0, len(s.members))
	for c := range s.members {
		out = append(out, c)
	}

	slices.Sort(out)

	return out
}

// Strings returns the capabilities as sorted raw strings.
func (s Set) Strings() []string {
	entries := s.Entries()

	out := make([]string, len(entries))
	for i, c := range entries {
		out[i] = string(c)
	}

	return out
}
