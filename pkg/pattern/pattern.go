package pattern

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// EmptyPolicy controls what an empty Set matches. File inclusion wants an
// empty set to match everything, while file exclusion and function stripping
// want it to match nothing.
type EmptyPolicy int

const (
	EmptyMatchesNone EmptyPolicy = iota
	EmptyMatchesAll
)

// Set is a compiled list of glob patterns with match-any semantics: a
// candidate matches the set if it matches at least one pattern.
type Set struct {
	patterns []string
	onEmpty  EmptyPolicy
}

// NewSet validates every pattern up front so that a bad glob surfaces as a
// configuration error rather than failing per-candidate later on.
func NewSet(patterns []string, onEmpty EmptyPolicy) (Set, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return Set{}, errors.Errorf("invalid glob pattern %q", p)
		}
	}
	return Set{
		patterns: append([]string(nil), patterns...),
		onEmpty:  onEmpty,
	}, nil
}

// MustSet is a NewSet that panics on invalid patterns, for use with
// compile-time constant patterns.
func MustSet(patterns []string, onEmpty EmptyPolicy) Set {
	s, err := NewSet(patterns, onEmpty)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Set) Matches(candidate string) bool {
	if len(s.patterns) == 0 {
		return s.onEmpty == EmptyMatchesAll
	}
	for _, p := range s.patterns {
		// patterns were validated at construction, so Match cannot error
		if match, err := doublestar.Match(p, candidate); err == nil && match {
			return true
		}
	}
	return false
}

func (s Set) Empty() bool {
	return len(s.patterns) == 0
}

func (s Set) Patterns() []string {
	return append([]string(nil), s.patterns...)
}
