package crossmatch

import (
	"fmt"
	"sort"
	"strings"
)

// Constraint is an immutable named attribute restricted to a set of allowed
// values. Two constraints are interchangeable when their key and value set
// are equal; identity never matters.
//
// A constraint with no values is a placeholder. Placeholders are only legal
// on the output side of a Matcher, where they mean "inherit this attribute's
// domain from the input side".
type Constraint struct {
	key    string
	values []string // sorted, deduplicated
}

// NewConstraint creates a constraint for the given attribute key.
// Values are deduplicated and kept in sorted order.
func NewConstraint(key string, values ...string) Constraint {
	if len(values) == 0 {
		return Constraint{key: key}
	}

	vals := make([]string, len(values))
	copy(vals, values)
	sort.Strings(vals)

	// Drop adjacent duplicates after sorting.
	out := vals[:1]
	for _, v := range vals[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}

	return Constraint{key: key, values: out}
}

// Key returns the attribute name this constraint restricts.
func (c Constraint) Key() string {
	return c.key
}

// Values returns a copy of the allowed values in sorted order.
func (c Constraint) Values() []string {
	if len(c.values) == 0 {
		return nil
	}
	out := make([]string, len(c.values))
	copy(out, c.values)
	return out
}

// Len returns the number of allowed values.
func (c Constraint) Len() int {
	return len(c.values)
}

// Empty reports whether the constraint is a placeholder with no values.
func (c Constraint) Empty() bool {
	return len(c.values) == 0
}

// Contains reports whether value is allowed by the constraint.
func (c Constraint) Contains(value string) bool {
	i := sort.SearchStrings(c.values, value)
	return i < len(c.values) && c.values[i] == value
}

// Intersect returns a constraint for the same key allowing only the values
// present in both c and other.
func (c Constraint) Intersect(other Constraint) Constraint {
	var vals []string
	for _, v := range c.values {
		if other.Contains(v) {
			vals = append(vals, v)
		}
	}
	return Constraint{key: c.key, values: vals}
}

// Equal reports whether two constraints have the same key and value set.
func (c Constraint) Equal(other Constraint) bool {
	if c.key != other.key || len(c.values) != len(other.values) {
		return false
	}
	for i, v := range c.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// id returns the canonical identity of the constraint. Constraints with
// equal keys and value sets have equal ids.
func (c Constraint) id() string {
	return c.key + "\x00" + strings.Join(c.values, "\x1f")
}

// String returns a readable form such as "model=ACCESS1-0|CSIRO-Mk3".
func (c Constraint) String() string {
	if c.Empty() {
		return fmt.Sprintf("%s=<any>", c.key)
	}
	return fmt.Sprintf("%s=%s", c.key, strings.Join(c.values, "|"))
}

// ConstraintSet is a set of constraints with value-type membership: two
// constraints with the same key and values occupy one slot.
type ConstraintSet map[string]Constraint

// NewConstraintSet creates a set holding the given constraints.
func NewConstraintSet(cons ...Constraint) ConstraintSet {
	s := make(ConstraintSet, len(cons))
	s.Add(cons...)
	return s
}

// Add inserts constraints into the set.
func (s ConstraintSet) Add(cons ...Constraint) {
	for _, c := range cons {
		s[c.id()] = c
	}
}

// Has reports whether an equal constraint is in the set.
func (s ConstraintSet) Has(c Constraint) bool {
	_, ok := s[c.id()]
	return ok
}

// HasKey reports whether any constraint in the set restricts key.
func (s ConstraintSet) HasKey(key string) bool {
	for _, c := range s {
		if c.key == key {
			return true
		}
	}
	return false
}

// Len returns the number of constraints in the set.
func (s ConstraintSet) Len() int {
	return len(s)
}

// All returns the constraints in deterministic (canonical id) order.
func (s ConstraintSet) All() []Constraint {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Constraint, len(ids))
	for i, id := range ids {
		out[i] = s[id]
	}
	return out
}

// Keys returns the distinct attribute keys in sorted order.
func (s ConstraintSet) Keys() []string {
	seen := make(map[string]struct{}, len(s))
	var keys []string
	for _, c := range s {
		if _, ok := seen[c.key]; !ok {
			seen[c.key] = struct{}{}
			keys = append(keys, c.key)
		}
	}
	sort.Strings(keys)
	return keys
}

// ByKey returns every constraint in the set restricting key, in
// deterministic order.
func (s ConstraintSet) ByKey(key string) []Constraint {
	var out []Constraint
	for _, c := range s.All() {
		if c.key == key {
			out = append(out, c)
		}
	}
	return out
}

// Union returns a new set with the constraints of both sets.
func (s ConstraintSet) Union(other ConstraintSet) ConstraintSet {
	out := make(ConstraintSet, len(s)+len(other))
	for id, c := range s {
		out[id] = c
	}
	for id, c := range other {
		out[id] = c
	}
	return out
}

// Intersect returns a new set with the constraints present in both sets.
func (s ConstraintSet) Intersect(other ConstraintSet) ConstraintSet {
	out := make(ConstraintSet)
	for id, c := range s {
		if _, ok := other[id]; ok {
			out[id] = c
		}
	}
	return out
}

// Difference returns a new set with the constraints of s absent from other.
func (s ConstraintSet) Difference(other ConstraintSet) ConstraintSet {
	out := make(ConstraintSet)
	for id, c := range s {
		if _, ok := other[id]; !ok {
			out[id] = c
		}
	}
	return out
}

// String returns the set's constraints in deterministic order.
func (s ConstraintSet) String() string {
	parts := make([]string, 0, len(s))
	for _, c := range s.All() {
		parts = append(parts, c.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
