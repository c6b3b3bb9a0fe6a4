package crossmatch

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Matcher pairs input file collections with output file collections. It
// reconciles their constraint sets once at construction and then enumerates,
// per pass, every valid attribute combination together with the matching
// input file groups and the resolved output file groups.
//
// The interesting cases:
//
//  1. Input and output cover the same attributes: one result per input
//     combination, a one-to-one mapping between input and output files.
//  2. The output declares attributes the input lacks (output-only): each
//     input combination fans out into one result per allowed value of every
//     output-only attribute.
//  3. The input declares attributes the output lacks (input-only): many
//     input files collapse into a single output file; the input-only
//     attribute is pinned to its single allowed value in every result.
//
// Mixed cases combine these behaviors.
type Matcher struct {
	inputs  []DataSet
	outputs []FileCreator

	nameMap  map[string]string
	logger   *log.Logger
	hashFunc HashFunc

	inputCons  ConstraintSet
	outputCons ConstraintSet
	shared     ConstraintSet
	sharedKeys map[string]struct{}
	inputOnly  Attributes
	outputOnly ConstraintSet
}

// Option defines a function that configures a Matcher.
type Option func(*Matcher)

// WithAttributeMap declares that an input attribute supplies the value for a
// differently-named output attribute. The map goes from input name to output
// name. Mapped input attributes are treated as shared: their per-combination
// value appears in every result and is handed to the output collections.
func WithAttributeMap(nameMap map[string]string) Option {
	return func(m *Matcher) {
		m.nameMap = nameMap
	}
}

// WithLogger sets the logger used for per-combination debug output.
// The default logger discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(m *Matcher) {
		m.logger = logger
	}
}

// WithHashFunc sets the hash used to deduplicate attribute assignments
// within a pass. The default is xxHash64.
func WithHashFunc(hashFunc HashFunc) Option {
	return func(m *Matcher) {
		m.hashFunc = hashFunc
	}
}

// New builds a Matcher over the given collections. Construction reconciles
// the constraint sets and fails fast on a misconfigured pairing: an input
// constraint with no values, an output placeholder with no input constraint
// to inherit from, or an input-only constraint with more than one candidate
// value. All reconciliation problems are reported together in a
// ReconcileError.
func New(inputs []DataSet, outputs []FileCreator, opts ...Option) (*Matcher, error) {
	if len(inputs) == 0 {
		return nil, errors.New("crossmatch: at least one input collection is required")
	}
	if len(outputs) == 0 {
		return nil, errors.New("crossmatch: at least one output collection is required")
	}

	m := &Matcher{
		inputs:   inputs,
		outputs:  outputs,
		logger:   log.New(io.Discard),
		hashFunc: defaultHashFunc,
	}

	// Apply options
	for _, opt := range opts {
		opt(m)
	}

	rawIn := NewConstraintSet()
	for _, ds := range inputs {
		rawIn = rawIn.Union(ds.Constraints())
	}
	rawOut := NewConstraintSet()
	for _, fc := range outputs {
		rawOut = rawOut.Union(fc.Constraints())
	}
	m.logger.Debug("collected raw constraints", "input", rawIn, "output", rawOut)

	inCons, outCons, errs := reconcile(rawIn, rawOut)
	if err := newReconcileError(errs); err != nil {
		return nil, err
	}
	m.inputCons = inCons
	m.outputCons = outCons

	if err := m.classify(); err != nil {
		return nil, err
	}

	m.logger.Debug("classified constraints",
		"shared", m.shared,
		"inputOnly", m.inputOnly,
		"outputOnly", m.outputOnly)

	return m, nil
}

// reconcile cleans the raw constraint sets. Repeated keys collapse to the
// intersection of their declared value sets; an empty intersection is fatal.
// Output placeholders inherit the reconciled input constraint for their key.
func reconcile(in, out ConstraintSet) (ConstraintSet, ConstraintSet, []error) {
	var errs []error

	newIn := NewConstraintSet()
	for _, key := range in.Keys() {
		merged, err := mergeKey(key, in.ByKey(key))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		newIn.Add(merged)
	}

	// Resolve placeholders before collapsing repeated output keys, so an
	// explicit output constraint can still narrow an inherited domain.
	resolved := NewConstraintSet()
	for _, c := range out.All() {
		if !c.Empty() {
			resolved.Add(c)
			continue
		}
		match := newIn.ByKey(c.Key())
		if len(match) != 1 {
			errs = append(errs, fmt.Errorf("%w: no input constraint for attribute %q",
				ErrUnresolvedOutput, c.Key()))
			continue
		}
		resolved.Add(match[0])
	}

	newOut := NewConstraintSet()
	for _, key := range resolved.Keys() {
		merged, err := mergeKey(key, resolved.ByKey(key))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		newOut.Add(merged)
	}

	return newIn, newOut, errs
}

// mergeKey intersects every constraint declared for one attribute key.
func mergeKey(key string, cons []Constraint) (Constraint, error) {
	merged := cons[0]
	for _, c := range cons[1:] {
		merged = merged.Intersect(c)
	}
	if merged.Empty() {
		return Constraint{}, fmt.Errorf("%w: attribute %q", ErrEmptyConstraint, key)
	}
	return merged, nil
}

// classify splits the reconciled attribute keys into shared, input-only and
// output-only. Output-only constraints are promoted into the shared set
// because they must be bound in every result.
func (m *Matcher) classify() error {
	var errs []error

	m.shared = NewConstraintSet()
	m.inputOnly = make(Attributes)
	m.outputOnly = NewConstraintSet()

	inKeys := make(map[string]struct{})
	for _, k := range m.inputCons.Keys() {
		inKeys[k] = struct{}{}
	}
	outKeys := make(map[string]struct{})
	for _, k := range m.outputCons.Keys() {
		outKeys[k] = struct{}{}
	}

	for _, c := range m.inputCons.All() {
		if _, ok := outKeys[c.Key()]; ok {
			// The output side is authoritative for keys both sides declare.
			m.shared.Add(m.outputCons.ByKey(c.Key())...)
			continue
		}
		if _, mapped := m.nameMap[c.Key()]; mapped {
			m.shared.Add(c)
			continue
		}
		if c.Len() != 1 {
			errs = append(errs, fmt.Errorf("%w: attribute %q has values %v",
				ErrAmbiguousValue, c.Key(), c.Values()))
			continue
		}
		m.inputOnly[c.Key()] = c.Values()[0]
	}

	mappedTargets := make(map[string]struct{}, len(m.nameMap))
	for _, target := range m.nameMap {
		mappedTargets[target] = struct{}{}
	}

	for _, c := range m.outputCons.All() {
		if _, ok := inKeys[c.Key()]; ok {
			continue
		}
		if _, ok := mappedTargets[c.Key()]; ok {
			// Supplied through the name mapping, not enumerated.
			continue
		}
		m.outputOnly.Add(c)
		m.shared.Add(c)
	}

	m.sharedKeys = make(map[string]struct{})
	for _, k := range m.shared.Keys() {
		m.sharedKeys[k] = struct{}{}
	}

	return newReconcileError(errs)
}

// InputConstraints returns a copy of the reconciled input constraint set.
func (m *Matcher) InputConstraints() ConstraintSet {
	return m.inputCons.Union(ConstraintSet{})
}

// OutputConstraints returns a copy of the reconciled output constraint set.
func (m *Matcher) OutputConstraints() ConstraintSet {
	return m.outputCons.Union(ConstraintSet{})
}

// SharedKeys returns the shared attribute keys in sorted order. Output-only
// keys are included: they are bound in every result.
func (m *Matcher) SharedKeys() []string {
	return m.shared.Keys()
}

// InputOnly returns a copy of the fixed input-only attribute assignment
// present in every result.
func (m *Matcher) InputOnly() Attributes {
	out := make(Attributes, len(m.inputOnly))
	for k, v := range m.inputOnly {
		out[k] = v
	}
	return out
}

// OutputOnly returns a copy of the output-only constraint set.
func (m *Matcher) OutputOnly() ConstraintSet {
	return m.outputOnly.Union(ConstraintSet{})
}
