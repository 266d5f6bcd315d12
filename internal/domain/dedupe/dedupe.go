// Package dedupe provides an insertion-ordered string set used wherever a
// garment or pack list must stay free of repeats.
package dedupe

// Set records strings in first-seen order and ignores repeats.
// The zero value is not usable; construct with New.
type Set struct {
	seen      map[string]struct{}
	items     []string
	skipEmpty bool
	key       func(string) string
}

// New creates an empty Set with configuration options.
func New(opts ...Option) *Set {
	s := &Set{
		key: func(v string) string { return v },
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}

	return s
}

// Add appends each item that has not been seen yet. It returns the number of
// items actually added.
func (s *Set) Add(items ...string) int {
	added := 0
	for _, item := range items {
		if s.skipEmpty && item == "" {
			continue
		}
		k := s.key(item)
		if _, exists := s.seen[k]; exists {
			continue
		}
		s.seen[k] = struct{}{}
		s.items = append(s.items, item)
		added++
	}
	return added
}

// Has reports whether item (after key folding) was already added.
func (s *Set) Has(item string) bool {
	_, ok := s.seen[s.key(item)]
	return ok
}

// Len returns the number of distinct items.
func (s *Set) Len() int {
	return len(s.items)
}

// Items returns a copy of the distinct items in first-insertion order.
// An empty set yields an empty, non-nil slice.
func (s *Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Strings deduplicates items preserving the first occurrence of each.
func Strings(items ...string) []string {
	s := New(WithCapacity(len(items)))
	s.Add(items...)
	return s.Items()
}
