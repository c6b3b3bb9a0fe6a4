package crossmatch

import (
	"reflect"
	"testing"
)

func TestConstraintValues(t *testing.T) {
	c := NewConstraint("model", "CSIRO-Mk3", "ACCESS1-0", "ACCESS1-0")

	want := []string{"ACCESS1-0", "CSIRO-Mk3"}
	if got := c.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %v, want sorted deduplicated %v", got, want)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if !c.Contains("ACCESS1-0") {
		t.Fatal("expected constraint to contain ACCESS1-0")
	}
	if c.Contains("MIROC5") {
		t.Fatal("did not expect constraint to contain MIROC5")
	}
}

func TestConstraintPlaceholder(t *testing.T) {
	c := NewConstraint("model")

	if !c.Empty() {
		t.Fatal("expected a constraint with no values to be empty")
	}
	if c.Contains("anything") {
		t.Fatal("empty constraint should contain nothing")
	}
}

func TestConstraintEqualityIsStructural(t *testing.T) {
	a := NewConstraint("model", "A", "B")
	b := NewConstraint("model", "B", "A")
	c := NewConstraint("model", "A")
	d := NewConstraint("variable", "A", "B")

	if !a.Equal(b) {
		t.Fatal("constraints with the same key and values should be equal regardless of declaration order")
	}
	if a.Equal(c) {
		t.Fatal("constraints with different value sets should not be equal")
	}
	if a.Equal(d) {
		t.Fatal("constraints with different keys should not be equal")
	}
}

func TestConstraintIntersect(t *testing.T) {
	a := NewConstraint("model", "A", "B")
	b := NewConstraint("model", "B", "C")

	got := a.Intersect(b)
	if !got.Equal(NewConstraint("model", "B")) {
		t.Fatalf("Intersect = %v, want model=B", got)
	}

	empty := a.Intersect(NewConstraint("model", "C"))
	if !empty.Empty() {
		t.Fatalf("disjoint intersection should be empty, got %v", empty)
	}
}

func TestConstraintSetMembership(t *testing.T) {
	s := NewConstraintSet(
		NewConstraint("model", "A", "B"),
		NewConstraint("model", "B", "A"), // same constraint, different declaration order
		NewConstraint("variable", "tas"),
	)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (value-type membership)", s.Len())
	}
	if !s.Has(NewConstraint("model", "A", "B")) {
		t.Fatal("expected set to contain model=A|B")
	}
	if !s.HasKey("variable") {
		t.Fatal("expected set to have key variable")
	}
	if s.HasKey("period") {
		t.Fatal("did not expect set to have key period")
	}
}

func TestConstraintSetAlgebra(t *testing.T) {
	model := NewConstraint("model", "A")
	variable := NewConstraint("variable", "tas")
	period := NewConstraint("period", "2006-2030")

	s1 := NewConstraintSet(model, variable)
	s2 := NewConstraintSet(variable, period)

	union := s1.Union(s2)
	if union.Len() != 3 {
		t.Fatalf("Union Len() = %d, want 3", union.Len())
	}

	inter := s1.Intersect(s2)
	if inter.Len() != 1 || !inter.Has(variable) {
		t.Fatalf("Intersect = %v, want {variable=tas}", inter)
	}

	diff := s1.Difference(s2)
	if diff.Len() != 1 || !diff.Has(model) {
		t.Fatalf("Difference = %v, want {model=A}", diff)
	}

	// The operands are untouched.
	if s1.Len() != 2 || s2.Len() != 2 {
		t.Fatal("set algebra should not mutate its operands")
	}
}

func TestConstraintSetByKey(t *testing.T) {
	s := NewConstraintSet(
		NewConstraint("model", "A"),
		NewConstraint("model", "B"),
		NewConstraint("variable", "tas"),
	)

	cons := s.ByKey("model")
	if len(cons) != 2 {
		t.Fatalf("ByKey(model) returned %d constraints, want 2", len(cons))
	}
	for _, c := range cons {
		if c.Key() != "model" {
			t.Fatalf("ByKey(model) returned constraint for key %q", c.Key())
		}
	}

	if got := s.Keys(); !reflect.DeepEqual(got, []string{"model", "variable"}) {
		t.Fatalf("Keys() = %v, want [model variable]", got)
	}
}

func TestCombinationOneConstraintPerKey(t *testing.T) {
	combo := NewCombination(
		NewConstraint("model", "A"),
		NewConstraint("variable", "tas"),
		NewConstraint("model", "B"), // replaces model=A
	)

	cons := combo.Constraints()
	if len(cons) != 2 {
		t.Fatalf("combination holds %d constraints, want 2", len(cons))
	}
	if !cons[0].Equal(NewConstraint("model", "B")) {
		t.Fatalf("model constraint = %v, want model=B", cons[0])
	}
}

func TestCombinationWithDoesNotMutate(t *testing.T) {
	base := NewCombination(NewConstraint("model", "A"))
	grown := base.With(NewConstraint("threshold", "10"))

	if len(base) != 1 {
		t.Fatal("With should not mutate the receiver")
	}
	if len(grown) != 2 {
		t.Fatalf("grown combination holds %d constraints, want 2", len(grown))
	}
	if base.id() == grown.id() {
		t.Fatal("combinations with different constraints should have different ids")
	}
}

func TestCombinationIDIsCanonical(t *testing.T) {
	a := NewCombination(NewConstraint("model", "A"), NewConstraint("variable", "tas"))
	b := NewCombination(NewConstraint("variable", "tas"), NewConstraint("model", "A"))

	if a.id() != b.id() {
		t.Fatal("equal combinations should have equal ids regardless of construction order")
	}
}
