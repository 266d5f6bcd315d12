package dedupe

import "strings"

// Option applies a configuration option to a Set.
type Option func(*Set)

// WithCapacity preallocates room for n distinct items.
func WithCapacity(n int) Option {
	return func(s *Set) {
		if n > 0 {
			s.seen = make(map[string]struct{}, n)
			s.items = make([]string, 0, n)
		}
	}
}

// WithSkipEmpty drops empty strings instead of recording them.
func WithSkipEmpty() Option {
	return func(s *Set) {
		s.skipEmpty = true
	}
}

// WithCaseInsensitive treats items that differ only in letter case as the
// same item. The first spelling seen is the one kept.
func WithCaseInsensitive() Option {
	return func(s *Set) {
		s.key = strings.ToLower
	}
}
