package crossmatch

import (
	"sort"
	"strings"
)

// Attributes is a flat attribute-to-value assignment describing one concrete
// point in the attribute space.
type Attributes map[string]string

// merged returns a copy of a with the entries of b added. Entries in a win
// on key collision.
func (a Attributes) merged(b Attributes) Attributes {
	out := make(Attributes, len(a)+len(b))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Combination is a set of constraints holding at most one constraint per
// attribute key. It represents one point (or a small region) of the
// attribute space that co-occurs in real data.
type Combination map[string]Constraint

// NewCombination creates a combination from the given constraints. When two
// constraints share a key, the later one wins.
func NewCombination(cons ...Constraint) Combination {
	c := make(Combination, len(cons))
	for _, con := range cons {
		c[con.Key()] = con
	}
	return c
}

// With returns a copy of the combination with the given constraints added,
// replacing any existing constraint with the same key.
func (c Combination) With(cons ...Constraint) Combination {
	out := make(Combination, len(c)+len(cons))
	for k, con := range c {
		out[k] = con
	}
	for _, con := range cons {
		out[con.Key()] = con
	}
	return out
}

// Constraints returns the combination's constraints sorted by key.
func (c Combination) Constraints() []Constraint {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Constraint, len(keys))
	for i, k := range keys {
		out[i] = c[k]
	}
	return out
}

// id returns the canonical identity of the combination, used to collapse
// duplicate combinations reported by several input collections.
func (c Combination) id() string {
	cons := c.Constraints()
	parts := make([]string, len(cons))
	for i, con := range cons {
		parts[i] = con.id()
	}
	return strings.Join(parts, "\x01")
}

// String returns a readable form such as "{model=ACCESS1-0, variable=tas}".
func (c Combination) String() string {
	cons := c.Constraints()
	parts := make([]string, len(cons))
	for i, con := range cons {
		parts[i] = con.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
