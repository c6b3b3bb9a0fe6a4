package crossmatch

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// PatternDataSet is a DataSet backed by files whose paths follow a template
// with %attribute% placeholders. The filesystem is scanned once at
// construction; constraints and valid combinations are derived from the
// attribute values observed in the matching paths.
type PatternDataSet struct {
	fs       afero.Fs
	template *pathTemplate
	files    []MetaFile
	cons     ConstraintSet
	combos   []Combination
}

// NewPatternDataSet scans fsys for files matching pattern and builds a
// DataSet over them. Optional constraints restrict the scan: a file whose
// extracted value falls outside a given constraint's domain is ignored.
// A missing scan root is not an error, just an empty data set.
func NewPatternDataSet(fsys afero.Fs, pattern string, cons ...Constraint) (*PatternDataSet, error) {
	tpl, err := parseTemplate(pattern)
	if err != nil {
		return nil, err
	}

	restrict := make(map[string]Constraint, len(cons))
	for _, c := range cons {
		if prev, ok := restrict[c.Key()]; ok {
			c = prev.Intersect(c)
		}
		restrict[c.Key()] = c
	}

	d := &PatternDataSet{fs: fsys, template: tpl}
	if err := d.scan(restrict); err != nil {
		return nil, err
	}
	d.index()
	return d, nil
}

// scan walks the filesystem below the template's literal prefix and records
// every file the template matches.
func (d *PatternDataSet) scan(restrict map[string]Constraint) error {
	root := d.template.walkRoot()
	exists, err := afero.DirExists(d.fs, root)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	return afero.Walk(d.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		attrs, ok := d.template.extract(filepath.ToSlash(path))
		if !ok {
			return nil
		}
		for key, c := range restrict {
			if v, present := attrs[key]; present && !c.Empty() && !c.Contains(v) {
				return nil
			}
		}

		d.files = append(d.files, MetaFile{
			Dir:        filepath.Dir(path),
			Name:       filepath.Base(path),
			Attributes: attrs,
		})
		return nil
	})
}

// index derives the constraint set and the valid combinations from the
// scanned files.
func (d *PatternDataSet) index() {
	values := make(map[string]map[string]struct{})
	comboIDs := make(map[string]struct{})

	for _, f := range d.files {
		combo := make(Combination, len(f.Attributes))
		for k, v := range f.Attributes {
			if values[k] == nil {
				values[k] = make(map[string]struct{})
			}
			values[k][v] = struct{}{}
			combo[k] = NewConstraint(k, v)
		}
		if _, ok := comboIDs[combo.id()]; !ok {
			comboIDs[combo.id()] = struct{}{}
			d.combos = append(d.combos, combo)
		}
	}

	d.cons = NewConstraintSet()
	for key, vals := range values {
		list := make([]string, 0, len(vals))
		for v := range vals {
			list = append(list, v)
		}
		d.cons.Add(NewConstraint(key, list...))
	}
}

// Constraints returns the constraints observed across the scanned files.
func (d *PatternDataSet) Constraints() ConstraintSet {
	return d.cons.Union(ConstraintSet{})
}

// ValidCombinations returns the distinct attribute combinations present in
// the scanned files.
func (d *PatternDataSet) ValidCombinations() []Combination {
	out := make([]Combination, len(d.combos))
	copy(out, d.combos)
	return out
}

// MatchingFiles returns the scanned files agreeing with the assignment.
func (d *PatternDataSet) MatchingFiles(attrs Attributes) []File {
	var out []File
	for _, f := range d.files {
		if f.matches(attrs) {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of scanned files.
func (d *PatternDataSet) Len() int {
	return len(d.files)
}
