package crossmatch

import (
	"testing"

	"github.com/spf13/afero"
)

func TestPatternFileCreatorResolves(t *testing.T) {
	fc, err := NewPatternFileCreator("/results/%variable%_%model%.nc", []Constraint{
		NewConstraint("variable"),
		NewConstraint("model"),
	})
	if err != nil {
		t.Fatalf("NewPatternFileCreator failed: %v", err)
	}

	files := fc.ResolveFiles(Attributes{"variable": "tas", "model": "A"}, nil)
	if len(files) != 1 {
		t.Fatalf("resolved %d files, want 1", len(files))
	}
	if got := files[0].Path(); got != "/results/tas_A.nc" {
		t.Fatalf("resolved %q, want /results/tas_A.nc", got)
	}

	meta, ok := files[0].(MetaFile)
	if !ok {
		t.Fatalf("resolved file is %T, want MetaFile", files[0])
	}
	if meta.Attributes["model"] != "A" {
		t.Fatalf("resolved attributes = %v, want model=A recorded", meta.Attributes)
	}
}

func TestPatternFileCreatorMissingAttribute(t *testing.T) {
	fc, err := NewPatternFileCreator("/results/%variable%_%model%.nc", []Constraint{
		NewConstraint("variable"),
		NewConstraint("model"),
	})
	if err != nil {
		t.Fatalf("NewPatternFileCreator failed: %v", err)
	}

	if files := fc.ResolveFiles(Attributes{"variable": "tas"}, nil); files != nil {
		t.Fatalf("resolved %v without a model value, want nothing", files)
	}
}

func TestPatternFileCreatorDomainCheck(t *testing.T) {
	fc, err := NewPatternFileCreator("/results/%model%.nc", []Constraint{
		NewConstraint("model", "A", "B"),
	})
	if err != nil {
		t.Fatalf("NewPatternFileCreator failed: %v", err)
	}

	if files := fc.ResolveFiles(Attributes{"model": "A"}, nil); len(files) != 1 {
		t.Fatalf("resolved %d files for an in-domain value, want 1", len(files))
	}
	if files := fc.ResolveFiles(Attributes{"model": "C"}, nil); files != nil {
		t.Fatalf("resolved %v for an out-of-domain value, want nothing", files)
	}
}

func TestPatternFileCreatorNameMapping(t *testing.T) {
	fc, err := NewPatternFileCreator("/results/%source%.nc", []Constraint{
		NewConstraint("source", "A", "B"),
	})
	if err != nil {
		t.Fatalf("NewPatternFileCreator failed: %v", err)
	}

	// The assignment carries the input-side name; the mapping supplies the
	// output-side value.
	files := fc.ResolveFiles(Attributes{"model": "A"}, map[string]string{"model": "source"})
	if len(files) != 1 {
		t.Fatalf("resolved %d files through the name mapping, want 1", len(files))
	}
	if got := files[0].Path(); got != "/results/A.nc" {
		t.Fatalf("resolved %q, want /results/A.nc", got)
	}
}

func TestPatternFileCreatorExistingOnly(t *testing.T) {
	memFs := afero.NewMemMapFs()
	if err := memFs.MkdirAll("/results", 0o755); err != nil {
		t.Fatalf("failed to create results directory: %v", err)
	}
	if err := afero.WriteFile(memFs, "/results/tas_A.nc", []byte("data"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	fc, err := NewPatternFileCreator("/results/%variable%_%model%.nc",
		[]Constraint{NewConstraint("variable"), NewConstraint("model")},
		ExistingOnly(memFs))
	if err != nil {
		t.Fatalf("NewPatternFileCreator failed: %v", err)
	}

	if files := fc.ResolveFiles(Attributes{"variable": "tas", "model": "A"}, nil); len(files) != 1 {
		t.Fatalf("resolved %d files for an existing path, want 1", len(files))
	}
	if files := fc.ResolveFiles(Attributes{"variable": "tas", "model": "B"}, nil); files != nil {
		t.Fatalf("resolved %v for a missing path, want nothing", files)
	}
}
