package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDepthExceeded is returned when a document nests deeper than MaxDepth.
var ErrDepthExceeded = fmt.Errorf("document nesting exceeds maximum depth of %d", MaxDepth)

// PatchErrorKind classifies why normalizing or applying a patch failed.
type PatchErrorKind int

const (
	Malformed PatchErrorKind = iota
	DecodeFailure
	TestFailed
	PathNotFound
	IndexOutOfRange
	TypeMismatch
)

func (k PatchErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case DecodeFailure:
		return "decode failure"
	case TestFailed:
		return "test failed"
	case PathNotFound:
		return "path not found"
	case IndexOutOfRange:
		return "index out of range"
	case TypeMismatch:
		return "type mismatch"
	default:
		return "unknown"
	}
}

// PatchError aborts a customization step. Operation is the zero based index
// of the failing operation, or -1 when the failure is not tied to one.
type PatchError struct {
	Kind      PatchErrorKind
	Operation int
	Path      Path
	Raw       string
	Err       error
}

func (e *PatchError) Error() string {
	var sb strings.Builder
	if e.Kind == DecodeFailure {
		sb.WriteString(fmt.Sprintf(
			"Unable to parse customizations as JSON: %s. Please make sure that the provided value is a valid JSON string.",
			e.Raw,
		))
		if e.Err != nil {
			sb.WriteString(" ")
			sb.WriteString(e.Err.Error())
		}
		return sb.String()
	}

	sb.WriteString("customization ")
	sb.WriteString(e.Kind.String())
	if e.Operation >= 0 {
		sb.WriteString(fmt.Sprintf(" in operation %d", e.Operation))
	}
	if e.Path != nil {
		sb.WriteString(fmt.Sprintf(" at path '%s'", e.Path))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *PatchError) Unwrap() error {
	return e.Err
}

// Is matches any *PatchError of the same Kind, so callers can test with
// errors.Is(err, &PatchError{Kind: TestFailed}).
func (e *PatchError) Is(target error) bool {
	var other *PatchError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// SchemaMismatchError reports every compliance violation found at once.
type SchemaMismatchError struct {
	MissingRequired []Path
	Incompatible    []Incompatibility
}

func (e *SchemaMismatchError) Error() string {
	var messages []string
	if len(e.MissingRequired) > 0 {
		paths := make([]string, len(e.MissingRequired))
		for i, p := range e.MissingRequired {
			paths[i] = p.String()
		}
		messages = append(messages, fmt.Sprintf(
			"Job is missing required attributes at the following paths: %s",
			strings.Join(paths, ", "),
		))
	}
	if len(e.Incompatible) > 0 {
		values := make([]string, len(e.Incompatible))
		for i, inc := range e.Incompatible {
			values[i] = inc.String()
		}
		messages = append(messages, fmt.Sprintf(
			"Job has incompatible values for the following attributes: %s",
			strings.Join(values, ", "),
		))
	}
	return strings.Join(messages, "; ")
}

// Is lets errors.Is(err, &SchemaMismatchError{}) match any mismatch.
func (e *SchemaMismatchError) Is(target error) bool {
	_, ok := target.(*SchemaMismatchError)
	return ok
}
