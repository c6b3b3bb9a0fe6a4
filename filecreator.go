package crossmatch

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// PatternFileCreator is a FileCreator that constructs file references from a
// path template with %attribute% placeholders. It performs no I/O unless
// configured with ExistingOnly.
type PatternFileCreator struct {
	template *pathTemplate
	cons     ConstraintSet
	fs       afero.Fs
	existing bool
}

// CreatorOption defines a function that configures a PatternFileCreator.
type CreatorOption func(*PatternFileCreator)

// ExistingOnly makes the creator resolve only files already present on the
// given filesystem, turning it into an existence check rather than a
// reference constructor.
func ExistingOnly(fsys afero.Fs) CreatorOption {
	return func(c *PatternFileCreator) {
		c.fs = fsys
		c.existing = true
	}
}

// NewPatternFileCreator builds a FileCreator over a path template and the
// declared output constraints. A constraint with no values is a placeholder
// that inherits its domain from the input side during reconciliation.
func NewPatternFileCreator(pattern string, cons []Constraint, opts ...CreatorOption) (*PatternFileCreator, error) {
	tpl, err := parseTemplate(pattern)
	if err != nil {
		return nil, err
	}

	c := &PatternFileCreator{
		template: tpl,
		cons:     NewConstraintSet(cons...),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Constraints returns the declared output constraints.
func (c *PatternFileCreator) Constraints() ConstraintSet {
	return c.cons.Union(ConstraintSet{})
}

// ResolveFiles builds the file reference for the assignment. A placeholder
// resolves from the assignment directly, or through the name mapping when
// the output attribute is supplied by a differently-named input attribute.
// Nothing is resolved when a placeholder has no value or a value falls
// outside the declared domain.
func (c *PatternFileCreator) ResolveFiles(attrs Attributes, nameMap map[string]string) []File {
	resolved := make(Attributes, len(c.template.keys))
	for _, key := range c.template.uniqueKeys() {
		v, ok := attrs[key]
		if !ok {
			for in, out := range nameMap {
				if out == key {
					v, ok = attrs[in]
					break
				}
			}
		}
		if !ok {
			return nil
		}
		for _, dc := range c.cons.ByKey(key) {
			if !dc.Empty() && !dc.Contains(v) {
				return nil
			}
		}
		resolved[key] = v
	}

	path, ok := c.template.substitute(resolved)
	if !ok {
		return nil
	}
	if c.existing {
		found, err := afero.Exists(c.fs, path)
		if err != nil || !found {
			return nil
		}
	}

	return []File{MetaFile{
		Dir:        filepath.Dir(path),
		Name:       filepath.Base(path),
		Attributes: resolved,
	}}
}
