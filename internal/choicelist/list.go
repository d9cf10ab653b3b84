// Package choicelist implements the bounded, deduplicated, self-compacting
// list of choices behind every dropdown group in the tracker.
//
// A List only ever stores non-blank vocabulary members, in the order they
// were chosen, and never more than its capacity. All mutation goes through
// Reconcile, which normalizes whatever raw slot values a view hands it.
package choicelist

import "strings"

// List is an ordered set of choices drawn from a fixed vocabulary.
// The zero value is not usable; create lists with New or Restore.
type List struct {
	capacity   int
	vocabulary []string
	allowed    map[string]struct{}
	values     []string
}

// New creates an empty list holding at most capacity values from vocabulary.
// A capacity below 1 is clamped to 1. Blank and repeated vocabulary entries are ignored.
func New(capacity int, vocabulary []string) *List {
	if capacity < 1 {
		capacity = 1
	}

	l := &List{
		capacity:   capacity,
		vocabulary: make([]string, 0, len(vocabulary)),
		allowed:    make(map[string]struct{}, len(vocabulary)),
		values:     []string{},
	}
	for _, v := range vocabulary {
		if isBlank(v) {
			continue
		}
		if _, ok := l.allowed[v]; ok {
			continue
		}
		l.allowed[v] = struct{}{}
		l.vocabulary = append(l.vocabulary, v)
	}
	return l
}

// Restore creates a list from previously stored values.
// The values are reconciled, so anything that no longer fits is dropped.
func Restore(capacity int, vocabulary []string, values []string) *List {
	l := New(capacity, vocabulary)
	l.Reconcile(values)
	return l
}

// Reconcile replaces the stored values with the normalized form of raw:
// blanks and unknown values are dropped, the first occurrence of a repeated
// value wins and the result is truncated to capacity, earliest entries first.
// It never fails.
func (l *List) Reconcile(raw []string) {
	l.values = Normalize(raw, l.capacity, l.Allows)
}

// Normalize applies the reconcile rules to raw without touching any list.
// A nil allow func accepts every non-blank value.
func Normalize(raw []string, capacity int, allow func(string) bool) []string {
	out := make([]string, 0, min(len(raw), max(capacity, 0)))
	seen := make(map[string]struct{}, len(raw))

	for _, v := range raw {
		if len(out) >= capacity {
			break
		}
		if isBlank(v) {
			continue
		}
		if allow != nil && !allow(v) {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Values returns a copy of the stored values in display order.
func (l *List) Values() []string {
	out := make([]string, len(l.values))
	copy(out, l.values)
	return out
}

// Vocabulary returns a copy of the allowed values in their original order.
func (l *List) Vocabulary() []string {
	out := make([]string, len(l.vocabulary))
	copy(out, l.vocabulary)
	return out
}

// Allows reports whether v is a vocabulary member.
func (l *List) Allows(v string) bool {
	_, ok := l.allowed[v]
	return ok
}

// Contains reports whether v is currently chosen.
func (l *List) Contains(v string) bool {
	for _, have := range l.values {
		if have == v {
			return true
		}
	}
	return false
}

// Len returns the number of chosen values.
func (l *List) Len() int { return len(l.values) }

// Capacity returns the maximum number of chosen values.
func (l *List) Capacity() int { return l.capacity }

// Full reports whether no further value can be added.
func (l *List) Full() bool { return len(l.values) >= l.capacity }

func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
