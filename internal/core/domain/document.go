package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	gyaml "github.com/goccy/go-yaml"
)

// MaxDepth is the deepest container nesting any traversal will accept.
const MaxDepth = 256

// Kind identifies which variant a Document holds.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ListKind
	MapKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ListKind:
		return "list"
	case MapKind:
		return "map"
	default:
		return "unknown"
	}
}

// Document is an immutable structured value: a scalar, an ordered list of
// Documents or a string keyed map of Documents. The zero value is null.
//
// Map keys keep their insertion order for serialization only; two maps with
// the same entries in a different order are equal.
type Document struct {
	kind   Kind
	b      bool
	n      float64
	s      string
	items  []Document
	keys   []string
	fields map[string]Document
}

// Field is a single map entry used to build map Documents in order.
type Field struct {
	Key   string
	Value Document
}

func Null() Document {
	return Document{}
}

func Bool(b bool) Document {
	return Document{kind: BoolKind, b: b}
}

func Number(n float64) Document {
	return Document{kind: NumberKind, n: n}
}

func String(s string) Document {
	return Document{kind: StringKind, s: s}
}

// List builds a list Document. The items slice is copied.
func List(items ...Document) Document {
	copied := make([]Document, len(items))
	copy(copied, items)
	return Document{kind: ListKind, items: copied}
}

// Map builds a map Document from fields in order. A repeated key keeps its
// first position and its last value.
func Map(fields ...Field) Document {
	d := Document{kind: MapKind, keys: make([]string, 0, len(fields)), fields: make(map[string]Document, len(fields))}
	for _, f := range fields {
		if _, exists := d.fields[f.Key]; !exists {
			d.keys = append(d.keys, f.Key)
		}
		d.fields[f.Key] = f.Value
	}
	return d
}

func (d Document) Kind() Kind {
	return d.kind
}

func (d Document) IsNull() bool {
	return d.kind == NullKind
}

func (d Document) IsMap() bool {
	return d.kind == MapKind
}

func (d Document) IsList() bool {
	return d.kind == ListKind
}

// IsContainer reports whether the document is a list or a map.
func (d Document) IsContainer() bool {
	return d.kind == ListKind || d.kind == MapKind
}

func (d Document) AsBool() (bool, bool) {
	return d.b, d.kind == BoolKind
}

func (d Document) AsNumber() (float64, bool) {
	return d.n, d.kind == NumberKind
}

func (d Document) AsString() (string, bool) {
	return d.s, d.kind == StringKind
}

// Len returns the number of list items or map entries, zero for scalars.
func (d Document) Len() int {
	switch d.kind {
	case ListKind:
		return len(d.items)
	case MapKind:
		return len(d.keys)
	default:
		return 0
	}
}

// Items returns a copy of the list items.
func (d Document) Items() []Document {
	if d.kind != ListKind {
		return nil
	}
	items := make([]Document, len(d.items))
	copy(items, d.items)
	return items
}

// Index returns the list item at i.
func (d Document) Index(i int) (Document, bool) {
	if d.kind != ListKind || i < 0 || i >= len(d.items) {
		return Document{}, false
	}
	return d.items[i], true
}

// Keys returns the map keys in insertion order.
func (d Document) Keys() []string {
	if d.kind != MapKind {
		return nil
	}
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Field returns the map value stored under key.
func (d Document) Field(key string) (Document, bool) {
	if d.kind != MapKind {
		return Document{}, false
	}
	v, ok := d.fields[key]
	return v, ok
}

// With returns a copy of the map with key set to value. Existing keys keep
// their position, new keys are appended.
func (d Document) With(key string, value Document) Document {
	if d.kind != MapKind {
		return d
	}
	out := Document{kind: MapKind, keys: make([]string, len(d.keys), len(d.keys)+1), fields: make(map[string]Document, len(d.fields)+1)}
	copy(out.keys, d.keys)
	for k, v := range d.fields {
		out.fields[k] = v
	}
	if _, exists := out.fields[key]; !exists {
		out.keys = append(out.keys, key)
	}
	out.fields[key] = value
	return out
}

// Without returns a copy of the map with key removed.
func (d Document) Without(key string) Document {
	if d.kind != MapKind {
		return d
	}
	out := Document{kind: MapKind, keys: make([]string, 0, len(d.keys)), fields: make(map[string]Document, len(d.fields))}
	for _, k := range d.keys {
		if k == key {
			continue
		}
		out.keys = append(out.keys, k)
		out.fields[k] = d.fields[k]
	}
	return out
}

// WithIndex returns a copy of the list with item i replaced.
func (d Document) WithIndex(i int, value Document) Document {
	if d.kind != ListKind || i < 0 || i >= len(d.items) {
		return d
	}
	items := d.Items()
	items[i] = value
	return Document{kind: ListKind, items: items}
}

// Inserted returns a copy of the list with value inserted before index i.
// i == Len() appends.
func (d Document) Inserted(i int, value Document) Document {
	if d.kind != ListKind || i < 0 || i > len(d.items) {
		return d
	}
	items := make([]Document, 0, len(d.items)+1)
	items = append(items, d.items[:i]...)
	items = append(items, value)
	items = append(items, d.items[i:]...)
	return Document{kind: ListKind, items: items}
}

// WithoutIndex returns a copy of the list with item i removed.
func (d Document) WithoutIndex(i int) Document {
	if d.kind != ListKind || i < 0 || i >= len(d.items) {
		return d
	}
	items := make([]Document, 0, len(d.items)-1)
	items = append(items, d.items[:i]...)
	items = append(items, d.items[i+1:]...)
	return Document{kind: ListKind, items: items}
}

// Clone returns a deep copy that shares no backing storage with d.
func (d Document) Clone() Document {
	switch d.kind {
	case ListKind:
		items := make([]Document, len(d.items))
		for i, item := range d.items {
			items[i] = item.Clone()
		}
		return Document{kind: ListKind, items: items}
	case MapKind:
		fields := make([]Field, len(d.keys))
		for i, k := range d.keys {
			fields[i] = Field{Key: k, Value: d.fields[k].Clone()}
		}
		return Map(fields...)
	default:
		return d
	}
}

// Equal reports structural equality. Map key order is ignored.
func Equal(a, b Document) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NullKind:
		return true
	case BoolKind:
		return a.b == b.b
	case NumberKind:
		return a.n == b.n || (math.IsNaN(a.n) && math.IsNaN(b.n))
	case StringKind:
		return a.s == b.s
	case ListKind:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case MapKind:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for k, av := range a.fields {
			bv, ok := b.fields[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal reports whether d and other are structurally equal.
func (d Document) Equal(other Document) bool {
	return Equal(d, other)
}

// Get resolves path against d. The boolean is false when nothing lives at
// path, which is different from a present null value.
func Get(d Document, path Path) (Document, bool) {
	current := d
	for _, seg := range path {
		switch current.kind {
		case MapKind:
			next, ok := current.fields[seg.Key()]
			if !ok {
				return Document{}, false
			}
			current = next
		case ListKind:
			idx, ok := seg.ListIndex()
			if !ok || idx >= len(current.items) {
				return Document{}, false
			}
			current = current.items[idx]
		default:
			return Document{}, false
		}
	}
	return current, true
}

// Depth returns the container nesting depth of d, failing with
// ErrDepthExceeded past MaxDepth.
func Depth(d Document) (int, error) {
	return depth(d, 0)
}

func depth(d Document, level int) (int, error) {
	if !d.IsContainer() {
		return 0, nil
	}
	if level >= MaxDepth {
		return 0, ErrDepthExceeded
	}
	deepest := 0
	visit := func(child Document) error {
		childDepth, err := depth(child, level+1)
		if err != nil {
			return err
		}
		if childDepth > deepest {
			deepest = childDepth
		}
		return nil
	}
	if d.kind == ListKind {
		for _, item := range d.items {
			if err := visit(item); err != nil {
				return 0, err
			}
		}
	} else {
		for _, k := range d.keys {
			if err := visit(d.fields[k]); err != nil {
				return 0, err
			}
		}
	}
	return deepest + 1, nil
}

// FromValue converts decoded Go values (JSON, YAML, hand built literals)
// into a Document. Plain Go maps are unordered so their keys are sorted;
// gyaml.MapSlice keeps its order.
func FromValue(v any) (Document, error) {
	return fromValue(v, 0)
}

// MustFromValue is FromValue for literals known to be valid.
func MustFromValue(v any) Document {
	d, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return d
}

func fromValue(v any, level int) (Document, error) {
	if level > MaxDepth {
		return Document{}, ErrDepthExceeded
	}
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case Document:
		if _, err := depth(val, level); err != nil {
			return Document{}, err
		}
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Number(float64(val)), nil
	case int8:
		return Number(float64(val)), nil
	case int16:
		return Number(float64(val)), nil
	case int32:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case uint:
		return Number(float64(val)), nil
	case uint8:
		return Number(float64(val)), nil
	case uint16:
		return Number(float64(val)), nil
	case uint32:
		return Number(float64(val)), nil
	case uint64:
		return Number(float64(val)), nil
	case float32:
		return Number(float64(val)), nil
	case float64:
		return Number(val), nil
	case time.Time:
		return String(val.Format(time.RFC3339Nano)), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Document{}, fmt.Errorf("invalid number %q: %w", val, err)
		}
		return Number(f), nil
	case []any:
		items := make([]Document, len(val))
		for i, item := range val {
			d, err := fromValue(item, level+1)
			if err != nil {
				return Document{}, err
			}
			items[i] = d
		}
		return Document{kind: ListKind, items: items}, nil
	case []Document:
		return fromValue(List(val...), level)
	case []string:
		items := make([]Document, len(val))
		for i, item := range val {
			items[i] = String(item)
		}
		return Document{kind: ListKind, items: items}, nil
	case []map[string]any:
		items := make([]Document, len(val))
		for i, item := range val {
			d, err := fromValue(item, level+1)
			if err != nil {
				return Document{}, err
			}
			items[i] = d
		}
		return Document{kind: ListKind, items: items}, nil
	case gyaml.MapSlice:
		fields := make([]Field, 0, len(val))
		for _, item := range val {
			key, err := keyString(item.Key)
			if err != nil {
				return Document{}, err
			}
			d, err := fromValue(item.Value, level+1)
			if err != nil {
				return Document{}, err
			}
			fields = append(fields, Field{Key: key, Value: d})
		}
		return Map(fields...), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			d, err := fromValue(val[k], level+1)
			if err != nil {
				return Document{}, err
			}
			fields = append(fields, Field{Key: k, Value: d})
		}
		return Map(fields...), nil
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, Field{Key: k, Value: String(val[k])})
		}
		return Map(fields...), nil
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, item := range val {
			key, err := keyString(k)
			if err != nil {
				return Document{}, err
			}
			converted[key] = item
		}
		return fromValue(converted, level)
	default:
		return Document{}, fmt.Errorf("unsupported document value of type %T", v)
	}
}

func keyString(k any) (string, error) {
	switch key := k.(type) {
	case string:
		return key, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(key), nil
	default:
		return "", fmt.Errorf("unsupported map key of type %T", k)
	}
}

// Value converts d back into plain Go values: map[string]any, []any,
// string, bool, int64 for integral numbers, float64 otherwise and nil.
func (d Document) Value() any {
	switch d.kind {
	case BoolKind:
		return d.b
	case NumberKind:
		return numberValue(d.n)
	case StringKind:
		return d.s
	case ListKind:
		items := make([]any, len(d.items))
		for i, item := range d.items {
			items[i] = item.Value()
		}
		return items
	case MapKind:
		m := make(map[string]any, len(d.keys))
		for _, k := range d.keys {
			m[k] = d.fields[k].Value()
		}
		return m
	default:
		return nil
	}
}

func (d Document) orderedValue() any {
	switch d.kind {
	case ListKind:
		items := make([]any, len(d.items))
		for i, item := range d.items {
			items[i] = item.orderedValue()
		}
		return items
	case MapKind:
		if len(d.keys) == 0 {
			return map[string]any{}
		}
		ms := make(gyaml.MapSlice, 0, len(d.keys))
		for _, k := range d.keys {
			ms = append(ms, gyaml.MapItem{Key: k, Value: d.fields[k].orderedValue()})
		}
		return ms
	default:
		return d.Value()
	}
}

func numberValue(n float64) any {
	if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
		return int64(n)
	}
	return n
}

// Parse decodes YAML or JSON bytes into a Document, keeping map key order.
// Empty input yields null.
func Parse(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Null(), nil
	}
	var v any
	if err := gyaml.UnmarshalWithOptions(data, &v, gyaml.UseOrderedMap()); err != nil {
		return Document{}, fmt.Errorf("failed to parse document: %w", err)
	}
	return FromValue(v)
}

// ParseJSON decodes strict JSON into a Document, keeping map key order. A
// duplicated key keeps its first position and its last value.
func ParseJSON(data []byte) (Document, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return Document{}, fmt.Errorf("failed to parse json: %w", err)
	}
	var v any
	if err := gyaml.UnmarshalWithOptions(data, &v, gyaml.UseOrderedMap(), gyaml.AllowDuplicateMapKey()); err != nil {
		return Document{}, fmt.Errorf("failed to parse json: %w", err)
	}
	return FromValue(v)
}

// EncodeYAML renders d as YAML with map keys in insertion order.
func EncodeYAML(d Document) ([]byte, error) {
	out, err := gyaml.MarshalWithOptions(d.orderedValue(), gyaml.Indent(2), gyaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document as yaml: %w", err)
	}
	return out, nil
}

// MarshalJSON renders d as JSON with map keys in insertion order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes JSON into d, keeping map key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Document) writeJSON(buf *bytes.Buffer) error {
	switch d.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(d.b))
	case NumberKind:
		if n, ok := numberValue(d.n).(int64); ok {
			buf.WriteString(strconv.FormatInt(n, 10))
			return nil
		}
		out, err := json.Marshal(d.n)
		if err != nil {
			return fmt.Errorf("failed to encode number: %w", err)
		}
		buf.Write(out)
	case StringKind:
		out, err := json.Marshal(d.s)
		if err != nil {
			return err
		}
		buf.Write(out)
	case ListKind:
		buf.WriteByte('[')
		for i, item := range d.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MapKind:
		buf.WriteByte('{')
		for i, k := range d.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := d.fields[k].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// String renders d as compact JSON, falling back to a Go representation.
func (d Document) String() string {
	out, err := d.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", d.Value())
	}
	return string(out)
}
