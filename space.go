package crossmatch

// File is an opaque reference to a data file. The matcher never opens or
// inspects files; it only groups the references the collections hand back.
type File interface {
	// Path returns the location of the file.
	Path() string
}

// DataSet is an input file collection. It exposes the attribute universe of
// its stored files and answers existence queries for concrete assignments.
type DataSet interface {
	// Constraints returns the full set of constraints covering the
	// collection's attributes.
	Constraints() ConstraintSet

	// ValidCombinations returns the attribute combinations actually present
	// in the collection's data, one constraint per key.
	ValidCombinations() []Combination

	// MatchingFiles returns the files matching the assignment, or an empty
	// result if none exist. An attribute unknown to the collection does not
	// restrict the match.
	MatchingFiles(attrs Attributes) []File
}

// FileCreator is an output file collection. It resolves or lazily constructs
// a file reference for a concrete assignment.
type FileCreator interface {
	// Constraints returns the declared output constraints. Placeholder
	// constraints (no values) inherit their domain from the input side
	// during reconciliation.
	Constraints() ConstraintSet

	// ResolveFiles resolves the file references for the assignment,
	// returning an empty result when no valid reference can be produced.
	// nameMap maps an input attribute name to the output attribute name it
	// supplies a value for.
	ResolveFiles(attrs Attributes, nameMap map[string]string) []File
}
