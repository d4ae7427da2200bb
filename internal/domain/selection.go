package domain

import "sort"

// Selection is the set of options a visitor submitted for one customer type.
type Selection map[string]struct{}

// NewSelection builds a set from submitted values. Repeated values collapse;
// every string, the empty one included, is a member as given.
func NewSelection(options ...string) Selection {
	s := make(Selection, len(options))
	for _, opt := range options {
		s[opt] = struct{}{}
	}
	return s
}

func (s Selection) Contains(option string) bool {
	_, ok := s[option]
	return ok
}

func (s Selection) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s Selection) Sorted() []string {
	out := make([]string, 0, len(s))
	for opt := range s {
		out = append(out, opt)
	}
	sort.Strings(out)
	return out
}
