package core

import (
	"fmt"

	"kjob/internal/core/domain"
)

// The helpers below edit Documents copy-on-write: every container on the
// way to the target is rebuilt and the input is never touched. Intermediate
// containers are never created.

func patchError(kind domain.PatchErrorKind, path domain.Path, format string, args ...any) *domain.PatchError {
	return &domain.PatchError{
		Kind:      kind,
		Operation: -1,
		Path:      path,
		Err:       fmt.Errorf(format, args...),
	}
}

// updateAt walks target and replaces the value found there with fn's result.
func updateAt(
	doc domain.Document,
	opPath domain.Path,
	target domain.Path,
	fn func(domain.Document) (domain.Document, error),
) (domain.Document, error) {
	if len(target) > domain.MaxDepth {
		return domain.Document{}, domain.ErrDepthExceeded
	}
	if len(target) == 0 {
		return fn(doc)
	}

	seg := target[0]
	switch doc.Kind() {
	case domain.MapKind:
		child, ok := doc.Field(seg.Key())
		if !ok {
			return domain.Document{}, patchError(domain.PathNotFound, opPath, "key '%s' does not exist", seg.Key())
		}
		updated, err := updateAt(child, opPath, target[1:], fn)
		if err != nil {
			return domain.Document{}, err
		}
		return doc.With(seg.Key(), updated), nil
	case domain.ListKind:
		idx, ok := seg.ListIndex()
		if !ok {
			return domain.Document{}, patchError(domain.TypeMismatch, opPath, "'%s' is not a valid list index", seg.Key())
		}
		child, ok := doc.Index(idx)
		if !ok {
			return domain.Document{}, patchError(domain.IndexOutOfRange, opPath, "index %d is out of range for list of length %d", idx, doc.Len())
		}
		updated, err := updateAt(child, opPath, target[1:], fn)
		if err != nil {
			return domain.Document{}, err
		}
		return doc.WithIndex(idx, updated), nil
	default:
		return domain.Document{}, patchError(domain.TypeMismatch, opPath, "cannot traverse into %s value at '%s'", doc.Kind(), seg.Key())
	}
}

func addAt(doc domain.Document, path domain.Path, value domain.Document) (domain.Document, error) {
	last, ok := path.Last()
	if !ok {
		return value, nil
	}
	return updateAt(doc, path, path.Parent(), func(parent domain.Document) (domain.Document, error) {
		switch parent.Kind() {
		case domain.MapKind:
			return parent.With(last.Key(), value), nil
		case domain.ListKind:
			if !last.IsIndex() && last.Key() == "-" {
				return parent.Inserted(parent.Len(), value), nil
			}
			idx, ok := last.ListIndex()
			if !ok {
				return domain.Document{}, patchError(domain.TypeMismatch, path, "'%s' is not a valid list index", last.Key())
			}
			if idx > parent.Len() {
				return domain.Document{}, patchError(domain.IndexOutOfRange, path, "index %d is out of range for list of length %d", idx, parent.Len())
			}
			return parent.Inserted(idx, value), nil
		default:
			return domain.Document{}, patchError(domain.TypeMismatch, path, "cannot add to %s value", parent.Kind())
		}
	})
}

func removeAt(doc domain.Document, path domain.Path) (domain.Document, error) {
	last, ok := path.Last()
	if !ok {
		return domain.Document{}, patchError(domain.TypeMismatch, path, "cannot remove the document root")
	}
	return updateAt(doc, path, path.Parent(), func(parent domain.Document) (domain.Document, error) {
		switch parent.Kind() {
		case domain.MapKind:
			if _, exists := parent.Field(last.Key()); !exists {
				return domain.Document{}, patchError(domain.PathNotFound, path, "key '%s' does not exist", last.Key())
			}
			return parent.Without(last.Key()), nil
		case domain.ListKind:
			idx, ok := last.ListIndex()
			if !ok {
				return domain.Document{}, patchError(domain.TypeMismatch, path, "'%s' is not a valid list index", last.Key())
			}
			if idx >= parent.Len() {
				return domain.Document{}, patchError(domain.IndexOutOfRange, path, "index %d is out of range for list of length %d", idx, parent.Len())
			}
			return parent.WithoutIndex(idx), nil
		default:
			return domain.Document{}, patchError(domain.TypeMismatch, path, "cannot remove from %s value", parent.Kind())
		}
	})
}

func replaceAt(doc domain.Document, path domain.Path, value domain.Document) (domain.Document, error) {
	last, ok := path.Last()
	if !ok {
		return value, nil
	}
	return updateAt(doc, path, path.Parent(), func(parent domain.Document) (domain.Document, error) {
		switch parent.Kind() {
		case domain.MapKind:
			if _, exists := parent.Field(last.Key()); !exists {
				return domain.Document{}, patchError(domain.PathNotFound, path, "key '%s' does not exist", last.Key())
			}
			return parent.With(last.Key(), value), nil
		case domain.ListKind:
			idx, ok := last.ListIndex()
			if !ok {
				return domain.Document{}, patchError(domain.TypeMismatch, path, "'%s' is not a valid list index", last.Key())
			}
			if idx >= parent.Len() {
				return domain.Document{}, patchError(domain.IndexOutOfRange, path, "index %d is out of range for list of length %d", idx, parent.Len())
			}
			return parent.WithIndex(idx, value), nil
		default:
			return domain.Document{}, patchError(domain.TypeMismatch, path, "cannot replace inside %s value", parent.Kind())
		}
	})
}
