/*
Package crossmatch pairs collections of attribute-described data files with
the output files a pipeline stage should produce from them.

A pipeline stage declares "for every combination of these attributes,
transform these inputs into this output". crossmatch enumerates every valid
attribute combination, locates the matching input files in each input
collection, and resolves the corresponding output file reference in each
output collection, without the stage having to spell out the cross product.

# Core Architecture

The engine is built from three pieces:

  - Constraint / ConstraintSet - an immutable named attribute restricted to a
    set of allowed values, with value-type equality and set algebra
  - Matcher - one-time reconciliation of the input and output constraint
    sets, classifying every attribute as shared, input-only or output-only
  - Pass - a pull-based iterator over the valid combinations, deduplicating
    assignments and querying the collections for files

Collections are external collaborators behind two narrow interfaces: DataSet
for the input side (existence checks) and FileCreator for the output side
(reference resolution). PatternDataSet and PatternFileCreator are ready-made
implementations driven by path templates with %attribute% placeholders,
backed by afero so any filesystem works.

# Basic Usage

Scan an input collection and declare an output template:

	fsys := afero.NewOsFs()

	obs, err := crossmatch.NewPatternDataSet(fsys,
	    "/data/cmip5/%model%/%variable%_%period%.nc")
	if err != nil {
	    log.Fatalf("failed to scan input collection: %v", err)
	}

	out, err := crossmatch.NewPatternFileCreator(
	    "/results/%variable%_%model%_%period%_regridded.nc",
	    []crossmatch.Constraint{
	        crossmatch.NewConstraint("variable"), // inherit domain from input
	        crossmatch.NewConstraint("model"),
	        crossmatch.NewConstraint("period"),
	    })
	if err != nil {
	    log.Fatalf("failed to build output collection: %v", err)
	}

Build the matcher and walk a pass:

	m, err := crossmatch.New(
	    []crossmatch.DataSet{obs},
	    []crossmatch.FileCreator{out})
	if err != nil {
	    log.Fatalf("constraint reconciliation failed: %v", err)
	}

	pass := m.Begin()
	for {
	    match, ok := pass.Next()
	    if !ok {
	        break
	    }
	    // match.Inputs, match.Outputs, match.Attributes
	}

# Reconciliation

Construction cleans the constraint sets before any enumeration happens:

  - An attribute declared by several input collections collapses to the
    intersection of the declared value sets; an empty intersection fails
    with ErrEmptyConstraint.
  - An output constraint declared with no values inherits the reconciled
    input constraint for its key; with no such constraint, construction
    fails with ErrUnresolvedOutput.
  - An attribute only the input side knows must collapse to a single value;
    anything else fails with ErrAmbiguousValue.

All problems are collected into one ReconcileError, so a misconfigured stage
reports everything at once. errors.Is works against the sentinels.

# Enumeration

Each Pass owns its own cursor and seen-set, so independent passes over one
Matcher never interfere. Within a pass no two results carry the same
attribute assignment, a combination without files in every input collection
is skipped, and output-only attributes are bound to each of their allowed
values in turn. Exhaustion is signalled by Next's second return value, never
by an error.

# Configuration Options

	m, err := crossmatch.New(inputs, outputs,
	    crossmatch.WithAttributeMap(map[string]string{"model": "source"}),
	    crossmatch.WithLogger(logger),
	    crossmatch.WithHashFunc(myHashFunc),
	)
*/
package crossmatch
