package crossmatch

import (
	"hash"
	"sort"
)

// Match is one result of a pass: the per-collection input file groups, the
// per-collection output file groups, and the attribute assignment they
// correspond to.
type Match struct {
	// Inputs holds one file group per input collection, in collection order.
	Inputs [][]File

	// Outputs holds one file group per output collection that resolved a
	// reference for the assignment. Collections that resolved nothing
	// contribute no group.
	Outputs [][]File

	// Attributes is the resolved assignment: the shared attributes of this
	// combination merged with the fixed input-only attributes.
	Attributes Attributes
}

// Pass enumerates the valid attribute combinations of a Matcher once. Each
// Pass owns its own cursor and seen-set, so independent passes over the same
// Matcher do not interfere. A Pass is not safe for concurrent use.
type Pass struct {
	matcher    *Matcher
	combos     []Combination
	expansions [][]Constraint
	baseIdx    int
	expIdx     int
	hash       hash.Hash
	seen       map[string]struct{}
	stats      PassStats
}

// Begin starts a new enumeration pass. It derives the base combination
// sequence from the input collections: the set union of their reported valid
// combinations, expanded with every allowed value of each output-only
// attribute.
func (m *Matcher) Begin() *Pass {
	byID := make(map[string]Combination)
	for _, ds := range m.inputs {
		for _, combo := range ds.ValidCombinations() {
			byID[combo.id()] = combo
		}
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	combos := make([]Combination, len(ids))
	for i, id := range ids {
		combos[i] = byID[id]
	}

	m.logger.Debug("beginning pass",
		"combinations", len(combos),
		"outputOnly", m.outputOnly.Len())

	return &Pass{
		matcher:    m,
		combos:     combos,
		expansions: expandOutputOnly(m.outputOnly),
		hash:       m.hashFunc(),
		seen:       make(map[string]struct{}),
	}
}

// expandOutputOnly builds the cross product of singleton constraints over
// every output-only attribute. The result always holds at least one tuple;
// with no output-only attributes it is a single empty tuple.
func expandOutputOnly(set ConstraintSet) [][]Constraint {
	tuples := [][]Constraint{nil}
	for _, c := range set.All() {
		next := make([][]Constraint, 0, len(tuples)*c.Len())
		for _, prefix := range tuples {
			for _, v := range c.Values() {
				tuple := make([]Constraint, len(prefix), len(prefix)+1)
				copy(tuple, prefix)
				tuple = append(tuple, NewConstraint(c.Key(), v))
				next = append(next, tuple)
			}
		}
		tuples = next
	}
	return tuples
}

// nextCombination advances the cursor over base combinations crossed with
// the output-only expansions.
func (p *Pass) nextCombination() (Combination, bool) {
	for p.baseIdx < len(p.combos) {
		if p.expIdx < len(p.expansions) {
			combo := p.combos[p.baseIdx].With(p.expansions[p.expIdx]...)
			p.expIdx++
			return combo, true
		}
		p.expIdx = 0
		p.baseIdx++
	}
	return nil, false
}

// project flattens the combination onto the shared attribute keys, picking
// one concrete value per constraint. Values are stored sorted, so a
// constraint that still carries several values resolves to the smallest,
// which is arbitrary but deterministic.
func (p *Pass) project(combo Combination) Attributes {
	attrs := make(Attributes, len(combo))
	for key, c := range combo {
		if _, ok := p.matcher.sharedKeys[key]; !ok {
			continue
		}
		if c.Len() > 0 {
			attrs[key] = c.Values()[0]
		}
	}
	return attrs
}

// Next returns the next group of input and output files together with the
// resolved attribute assignment. It advances past duplicate assignments and
// combinations with no input or output presence. The second return value is
// false when the pass is exhausted.
func (p *Pass) Next() (Match, bool) {
	m := p.matcher

	for {
		combo, ok := p.nextCombination()
		if !ok {
			return Match{}, false
		}
		p.stats.Candidates++

		attrs := p.project(combo)
		m.logger.Debug("evaluating combination", "attributes", attrs)

		digest := hashAttributes(p.hash, attrs)
		if _, done := p.seen[digest]; done {
			p.stats.Duplicates++
			m.logger.Debug("assignment already processed", "digest", digest)
			continue
		}

		// A combination with no input presence is never reified, so the
		// outputs are only consulted once every input collection matched.
		inputs := make([][]File, 0, len(m.inputs))
		for _, ds := range m.inputs {
			files := ds.MatchingFiles(attrs)
			if len(files) == 0 {
				inputs = nil
				break
			}
			inputs = append(inputs, files)
		}

		p.seen[digest] = struct{}{}

		if inputs == nil {
			p.stats.MissingInputs++
			m.logger.Debug("no input files for combination", "attributes", attrs)
			continue
		}

		var outputs [][]File
		for _, fc := range m.outputs {
			files := fc.ResolveFiles(attrs, m.nameMap)
			if len(files) > 0 {
				outputs = append(outputs, files)
			}
		}
		if len(outputs) == 0 {
			p.stats.MissingOutputs++
			m.logger.Debug("no output files for combination", "attributes", attrs)
			continue
		}

		p.stats.Matches++
		return Match{
			Inputs:     inputs,
			Outputs:    outputs,
			Attributes: attrs.merged(m.inputOnly),
		}, true
	}
}
