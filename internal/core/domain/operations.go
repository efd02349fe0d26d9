package domain

import (
	"fmt"
	"slices"
)

// DiffKind is the closed set of structural differences.
type DiffKind string

const (
	DiffAdd     DiffKind = "add"
	DiffRemove  DiffKind = "remove"
	DiffReplace DiffKind = "replace"
)

// DiffOp is one difference between a candidate and a base document. Value
// is the base's value for Add and Replace and unused for Remove.
type DiffOp struct {
	Kind  DiffKind
	Path  Path
	Value Document
}

// PatchKind is one of the six RFC 6902 operations.
type PatchKind string

const (
	PatchAdd     PatchKind = "add"
	PatchRemove  PatchKind = "remove"
	PatchReplace PatchKind = "replace"
	PatchMove    PatchKind = "move"
	PatchCopy    PatchKind = "copy"
	PatchTest    PatchKind = "test"
)

var patchKinds = []PatchKind{PatchAdd, PatchRemove, PatchReplace, PatchMove, PatchCopy, PatchTest}

// ParsePatchKind validates op names exactly as they appear on the wire.
func ParsePatchKind(op string) (PatchKind, error) {
	kind := PatchKind(op)
	if !slices.Contains(patchKinds, kind) {
		return "", fmt.Errorf("unknown patch operation %q", op)
	}
	return kind, nil
}

// HasValue reports whether the operation carries a value.
func (k PatchKind) HasValue() bool {
	return k == PatchAdd || k == PatchReplace || k == PatchTest
}

// HasFrom reports whether the operation reads a source location.
func (k PatchKind) HasFrom() bool {
	return k == PatchMove || k == PatchCopy
}

// PatchOp is one edit instruction. From is only meaningful for move and
// copy, Value only for add, replace and test.
type PatchOp struct {
	Kind  PatchKind
	Path  Path
	From  Path
	Value Document
}

// Equal compares the fields that are meaningful for the operation kind.
func (o PatchOp) Equal(other PatchOp) bool {
	if o.Kind != other.Kind || !o.Path.Equal(other.Path) {
		return false
	}
	if o.Kind.HasFrom() && !o.From.Equal(other.From) {
		return false
	}
	if o.Kind.HasValue() && !Equal(o.Value, other.Value) {
		return false
	}
	return true
}

// Patch is an ordered sequence of operations applied left to right.
type Patch []PatchOp

func (p Patch) Equal(other Patch) bool {
	return slices.EqualFunc(p, other, PatchOp.Equal)
}

// AddOp, RemoveOp, ReplaceOp, MoveOp, CopyOp and TestOp build single operations.

func AddOp(path Path, value Document) PatchOp {
	return PatchOp{Kind: PatchAdd, Path: path, Value: value}
}

func RemoveOp(path Path) PatchOp {
	return PatchOp{Kind: PatchRemove, Path: path}
}

func ReplaceOp(path Path, value Document) PatchOp {
	return PatchOp{Kind: PatchReplace, Path: path, Value: value}
}

func MoveOp(from, path Path) PatchOp {
	return PatchOp{Kind: PatchMove, Path: path, From: from}
}

func CopyOp(from, path Path) PatchOp {
	return PatchOp{Kind: PatchCopy, Path: path, From: from}
}

func TestOp(path Path, value Document) PatchOp {
	return PatchOp{Kind: PatchTest, Path: path, Value: value}
}

// Incompatibility is a path whose value disagrees with the base template.
type Incompatibility struct {
	Path     Path
	Expected Document
}

func (i Incompatibility) String() string {
	return fmt.Sprintf("%s must have value %s", i.Path, i.Expected)
}

// ComplianceReport lists every violation of a base template, sorted by path.
type ComplianceReport struct {
	MissingRequired []Path
	Incompatible    []Incompatibility
}

// Empty reports whether the candidate satisfies the template.
func (r ComplianceReport) Empty() bool {
	return len(r.MissingRequired) == 0 && len(r.Incompatible) == 0
}

// Err converts a non-empty report into a *SchemaMismatchError.
func (r ComplianceReport) Err() error {
	if r.Empty() {
		return nil
	}
	return &SchemaMismatchError{MissingRequired: r.MissingRequired, Incompatible: r.Incompatible}
}
