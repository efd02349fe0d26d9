package core

import (
	"encoding/json"
	"fmt"

	"kjob/internal/core/domain"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// CustomizationEngine turns customization input into an ordered patch and
// applies it to a base manifest. Application is all or nothing.
type CustomizationEngine struct{}

func ProvideCustomizationEngine() *CustomizationEngine {
	return &CustomizationEngine{}
}

// Normalize accepts a domain.Patch, a jsonpatch.Patch, a JSON encoded
// string or byte slice, a list of raw operation records ([]any,
// []map[string]any or a list Document) and nil, which yields an empty patch.
func (e *CustomizationEngine) Normalize(input any) (domain.Patch, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case domain.Patch:
		return append(domain.Patch(nil), v...), nil
	case []domain.PatchOp:
		return append(domain.Patch(nil), v...), nil
	case jsonpatch.Patch:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, &domain.PatchError{Kind: domain.Malformed, Operation: -1, Err: err}
		}
		return e.decode(string(encoded))
	case string:
		return e.decode(v)
	case []byte:
		return e.decode(string(v))
	case domain.Document:
		return normalizeRecords(v)
	case []any, []map[string]any:
		records, err := domain.FromValue(v)
		if err != nil {
			return nil, &domain.PatchError{Kind: domain.Malformed, Operation: -1, Err: err}
		}
		return normalizeRecords(records)
	default:
		return nil, &domain.PatchError{
			Kind:      domain.Malformed,
			Operation: -1,
			Err:       fmt.Errorf("unsupported customization type %T", input),
		}
	}
}

// decode parses an encoded patch. Invalid JSON is a decode failure; well
// formed JSON with bad operations is malformed.
func (e *CustomizationEngine) decode(raw string) (domain.Patch, error) {
	records, err := domain.ParseJSON([]byte(raw))
	if err != nil {
		return nil, &domain.PatchError{Kind: domain.DecodeFailure, Operation: -1, Raw: raw, Err: err}
	}
	if !records.IsList() {
		return nil, &domain.PatchError{
			Kind:      domain.DecodeFailure,
			Operation: -1,
			Raw:       raw,
			Err:       fmt.Errorf("expected a list of operations, got %s", records.Kind()),
		}
	}
	return normalizeRecords(records)
}

func normalizeRecords(records domain.Document) (domain.Patch, error) {
	if !records.IsList() {
		return nil, &domain.PatchError{
			Kind:      domain.Malformed,
			Operation: -1,
			Err:       fmt.Errorf("customizations must be a list of operations, got %s", records.Kind()),
		}
	}
	patch := make(domain.Patch, 0, records.Len())
	for i, record := range records.Items() {
		op, err := operationFromRecord(record)
		if err != nil {
			return nil, &domain.PatchError{Kind: domain.Malformed, Operation: i, Err: err}
		}
		patch = append(patch, op)
	}
	return patch, nil
}

func operationFromRecord(record domain.Document) (domain.PatchOp, error) {
	if !record.IsMap() {
		return domain.PatchOp{}, fmt.Errorf("operation must be an object, got %s", record.Kind())
	}

	opName, err := stringField(record, "op")
	if err != nil {
		return domain.PatchOp{}, err
	}
	kind, err := domain.ParsePatchKind(opName)
	if err != nil {
		return domain.PatchOp{}, err
	}

	pointer, err := stringField(record, "path")
	if err != nil {
		return domain.PatchOp{}, err
	}
	path, err := domain.ParsePointer(pointer)
	if err != nil {
		return domain.PatchOp{}, err
	}

	op := domain.PatchOp{Kind: kind, Path: path}
	if kind.HasFrom() {
		fromPointer, err := stringField(record, "from")
		if err != nil {
			return domain.PatchOp{}, err
		}
		if op.From, err = domain.ParsePointer(fromPointer); err != nil {
			return domain.PatchOp{}, err
		}
	}
	if kind.HasValue() {
		value, ok := record.Field("value")
		if !ok {
			return domain.PatchOp{}, fmt.Errorf("'%s' operation is missing required field 'value'", kind)
		}
		op.Value = value
	}
	return op, nil
}

func stringField(record domain.Document, name string) (string, error) {
	field, ok := record.Field(name)
	if !ok {
		return "", fmt.Errorf("operation is missing required field '%s'", name)
	}
	s, ok := field.AsString()
	if !ok {
		return "", fmt.Errorf("operation field '%s' must be a string, got %s", name, field.Kind())
	}
	return s, nil
}

// Apply runs patch against base in order, each operation seeing the result
// of the previous one. On failure no partial result is returned.
func (e *CustomizationEngine) Apply(base domain.Document, patch domain.Patch) (domain.Document, error) {
	working := base
	for i, op := range patch {
		next, err := applyOperation(working, op)
		if err != nil {
			return domain.Document{}, annotateOperation(err, i, op)
		}
		working = next
	}
	return working, nil
}

// ApplyCustomizations normalizes input and applies it to base.
func (e *CustomizationEngine) ApplyCustomizations(base domain.Document, input any) (domain.Document, error) {
	patch, err := e.Normalize(input)
	if err != nil {
		return domain.Document{}, err
	}
	return e.Apply(base, patch)
}

// Encode renders patch as a JSON array of RFC 6902 operations. It is the
// inverse of Normalize for string input.
func (e *CustomizationEngine) Encode(patch domain.Patch) (string, error) {
	records := make([]domain.Document, len(patch))
	for i, op := range patch {
		fields := []domain.Field{
			{Key: "op", Value: domain.String(string(op.Kind))},
			{Key: "path", Value: domain.String(op.Path.String())},
		}
		if op.Kind.HasFrom() {
			fields = append(fields, domain.Field{Key: "from", Value: domain.String(op.From.String())})
		}
		if op.Kind.HasValue() {
			fields = append(fields, domain.Field{Key: "value", Value: op.Value})
		}
		records[i] = domain.Map(fields...)
	}
	out, err := domain.List(records...).MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode customizations: %w", err)
	}
	return string(out), nil
}

func applyOperation(doc domain.Document, op domain.PatchOp) (domain.Document, error) {
	switch op.Kind {
	case domain.PatchAdd:
		return addAt(doc, op.Path, op.Value)
	case domain.PatchRemove:
		return removeAt(doc, op.Path)
	case domain.PatchReplace:
		return replaceAt(doc, op.Path, op.Value)
	case domain.PatchMove:
		if op.From.Equal(op.Path) {
			return doc, nil
		}
		if op.Path.HasPrefix(op.From) {
			return domain.Document{}, patchError(domain.Malformed, op.Path, "cannot move '%s' into one of its children", op.From)
		}
		value, found := domain.Get(doc, op.From)
		if !found {
			return domain.Document{}, patchError(domain.PathNotFound, op.From, "move source does not exist")
		}
		removed, err := removeAt(doc, op.From)
		if err != nil {
			return domain.Document{}, err
		}
		return addAt(removed, op.Path, value)
	case domain.PatchCopy:
		value, found := domain.Get(doc, op.From)
		if !found {
			return domain.Document{}, patchError(domain.PathNotFound, op.From, "copy source does not exist")
		}
		return addAt(doc, op.Path, value)
	case domain.PatchTest:
		actual, found := domain.Get(doc, op.Path)
		if !found {
			return domain.Document{}, patchError(domain.TestFailed, op.Path, "expected %s, found nothing", op.Value)
		}
		if !domain.Equal(actual, op.Value) {
			return domain.Document{}, patchError(domain.TestFailed, op.Path, "expected %s, got %s", op.Value, actual)
		}
		return doc, nil
	default:
		return domain.Document{}, patchError(domain.Malformed, op.Path, "unknown operation '%s'", op.Kind)
	}
}

func annotateOperation(err error, index int, op domain.PatchOp) error {
	if patchErr, ok := err.(*domain.PatchError); ok {
		patchErr.Operation = index
		if patchErr.Path == nil {
			patchErr.Path = op.Path
		}
		return patchErr
	}
	return fmt.Errorf("customization operation %d (%s %s) failed: %w", index, op.Kind, op.Path, err)
}
