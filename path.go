package jsonedit

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	key   string
	index int
	isIdx bool
}

// Key returns a segment addressing the object member named k.
func Key(k string) Segment { return Segment{key: k} }

// Index returns a segment addressing array element i. It panics if i is negative.
func Index(i int) Segment {
	if i < 0 {
		panic(fmt.Sprintf("jsonedit: negative array index %d", i))
	}
	return Segment{index: i, isIdx: true}
}

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.isIdx }

// Key returns the member name of a key segment ("" for index segments).
func (s Segment) Key() string { return s.key }

// Index returns the element index of an index segment (0 for key segments).
func (s Segment) Index() int { return s.index }

// String renders the segment as it appears between brackets in Path.String.
func (s Segment) String() string {
	if s.isIdx {
		return strconv.Itoa(s.index)
	}
	return quoteJSON(s.key)
}

// Path locates a value inside a document. The empty path is the document root.
type Path []Segment

// MustPath builds a Path from strings (keys) and ints (indices).
// It panics on any other element type or on a negative index.
func MustPath(elems ...any) Path {
	p := make(Path, 0, len(elems))
	for _, e := range elems {
		switch t := e.(type) {
		case string:
			p = append(p, Key(t))
		case int:
			p = append(p, Index(t))
		case Segment:
			p = append(p, t)
		default:
			panic(fmt.Sprintf("jsonedit: unsupported path element %T", e))
		}
	}
	return p
}

// String renders p in bracket notation: $ for the root, otherwise
// $["key"][0]["nested"] with keys as JSON strings and indices bare.
func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var sb strings.Builder
	sb.WriteByte('$')
	for _, s := range p {
		sb.WriteByte('[')
		sb.WriteString(s.String())
		sb.WriteByte(']')
	}
	return sb.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders p as an RFC 6901 JSON Pointer ("" for the root).
func (p Path) Pointer() string {
	var sb strings.Builder
	for _, s := range p {
		sb.WriteByte('/')
		if s.isIdx {
			sb.WriteString(strconv.Itoa(s.index))
			continue
		}
		sb.WriteString(pointerEscaper.Replace(s.key))
	}
	return sb.String()
}

// ParsePointer parses an RFC 6901 JSON Pointer. Tokens made only of decimal
// digits (without a leading zero) are read as array indices; everything else
// is a key.
func ParsePointer(ptr string) (Path, error) {
	if ptr == "" {
		return Path{}, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, fmt.Errorf("jsonedit: JSON Pointer must start with '/': %q", ptr)
	}
	parts := strings.Split(ptr, "/")[1:]
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		if part == "-" {
			return nil, fmt.Errorf("jsonedit: JSON Pointer %q: '-' does not address an existing element", ptr)
		}
		tok := strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndexToken(tok) {
			i, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("jsonedit: JSON Pointer %q: %w", ptr, err)
			}
			p = append(p, Index(i))
			continue
		}
		p = append(p, Key(tok))
	}
	return p, nil
}

func isIndexToken(tok string) bool {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

// Child returns a new path with s appended; p is left untouched.
func (p Path) Child(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Parent returns the path without its last segment. The root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return append(Path(nil), p[:len(p)-1]...)
}

// Equal reports whether p and q address the same location.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
