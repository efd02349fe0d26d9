package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a map key or a list index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a map key segment. A canonical non-negative decimal yields the
// same segment as Index, matching how pointers are parsed.
func Key(k string) Segment {
	if i, ok := parseIndex(k); ok {
		return Index(i)
	}
	return Segment{key: k}
}

// Index returns a list index segment. Negative indexes are clamped to zero.
func Index(i int) Segment {
	if i < 0 {
		i = 0
	}
	return Segment{key: strconv.Itoa(i), index: i, isIndex: true}
}

// Key returns the textual form of the segment, used when it addresses a map.
func (s Segment) Key() string {
	return s.key
}

// IsIndex reports whether the segment was built as a list index.
func (s Segment) IsIndex() bool {
	return s.isIndex
}

// ListIndex interprets the segment as a list index. Map key segments qualify
// when their text is a canonical non-negative decimal.
func (s Segment) ListIndex() (int, bool) {
	if s.isIndex {
		return s.index, true
	}
	return parseIndex(s.key)
}

func (s Segment) compare(o Segment) int {
	switch {
	case s.isIndex && o.isIndex:
		return compareInts(s.index, o.index)
	case s.isIndex:
		return -1
	case o.isIndex:
		return 1
	default:
		return strings.Compare(s.key, o.key)
	}
}

// Path addresses a location inside a Document. The empty path is the root.
type Path []Segment

// NewPath builds a path from string keys and int indexes.
func NewPath(segments ...any) Path {
	p := make(Path, 0, len(segments))
	for _, s := range segments {
		switch v := s.(type) {
		case int:
			p = append(p, Index(v))
		case string:
			p = append(p, Key(v))
		case Segment:
			p = append(p, v)
		default:
			panic(fmt.Sprintf("unsupported path segment %T", s))
		}
	}
	return p
}

// Child returns a new path extended with a map key. p is not modified.
func (p Path) Child(key string) Path {
	return p.append(Key(key))
}

// ChildIndex returns a new path extended with a list index.
func (p Path) ChildIndex(i int) Path {
	return p.append(Index(i))
}

func (p Path) append(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the final segment.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

func (p Path) IsRoot() bool {
	return len(p) == 0
}

// HasPrefix reports whether prefix addresses p or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return prefix.Equal(p[:len(prefix)])
}

func (p Path) Equal(o Path) bool {
	return p.Compare(o) == 0
}

// Compare orders paths lexicographically by segment. Index segments sort
// before key segments at the same position.
func (p Path) Compare(o Path) int {
	for i := 0; i < len(p) && i < len(o); i++ {
		if c := p[i].compare(o[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(p), len(o))
}

// String renders the path as a JSON pointer (RFC 6901).
func (p Path) String() string {
	var sb strings.Builder
	for _, s := range p {
		sb.WriteByte('/')
		sb.WriteString(escapePointerToken(s.key))
	}
	return sb.String()
}

// Dotted renders the path as dot separated keys, e.g. spec.replicas.
func (p Path) Dotted() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.key
	}
	return strings.Join(parts, ".")
}

// ParsePointer parses a JSON pointer. Tokens that are canonical decimals
// become index segments; everything else, including "-", is a key.
func ParsePointer(pointer string) (Path, error) {
	if pointer == "" {
		return Path{}, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("json pointer must start with '/': %q", pointer)
	}
	tokens := strings.Split(pointer[1:], "/")
	if len(tokens) > MaxDepth {
		return nil, ErrDepthExceeded
	}
	p := make(Path, 0, len(tokens))
	for _, token := range tokens {
		token, err := unescapePointerToken(token)
		if err != nil {
			return nil, fmt.Errorf("invalid json pointer %q: %w", pointer, err)
		}
		if idx, ok := parseIndex(token); ok {
			p = append(p, Index(idx))
			continue
		}
		p = append(p, Key(token))
	}
	return p, nil
}

// MustParsePointer is ParsePointer for constant pointers.
func MustParsePointer(pointer string) Path {
	p, err := ParsePointer(pointer)
	if err != nil {
		panic(err)
	}
	return p
}

// SortPaths sorts paths in place using Compare.
func SortPaths(paths []Path) {
	slices.SortFunc(paths, Path.Compare)
}

func escapePointerToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// unescapePointerToken decodes ~1 before ~0 so "~01" stays "~1".
func unescapePointerToken(s string) (string, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			continue
		}
		if i+1 >= len(s) || (s[i+1] != '0' && s[i+1] != '1') {
			return "", fmt.Errorf("bad escape sequence in token %q", s)
		}
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~"), nil
}

func parseIndex(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
