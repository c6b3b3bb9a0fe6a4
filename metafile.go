package crossmatch

import "path/filepath"

// MetaFile is a concrete File: a reference to a data file together with the
// attribute assignment it was matched or created for.
type MetaFile struct {
	Dir        string
	Name       string
	Attributes Attributes
}

// Path returns the file's full path.
func (f MetaFile) Path() string {
	return filepath.Join(f.Dir, f.Name)
}

// String returns the file's path.
func (f MetaFile) String() string {
	return f.Path()
}

// matches reports whether the file's attributes agree with the assignment.
// Attributes the file does not carry are not restrictive.
func (f MetaFile) matches(attrs Attributes) bool {
	for k, v := range attrs {
		if fv, ok := f.Attributes[k]; ok && fv != v {
			return false
		}
	}
	return true
}
