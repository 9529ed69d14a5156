package jsonedit

import (
	"encoding/json"
	"maps"

	gyaml "github.com/goccy/go-yaml"
)

// RowType is the JSON kind shown for a field row.
type RowType string

const (
	TypeString  RowType = "string"
	TypeNumber  RowType = "number"
	TypeBoolean RowType = "boolean"
	TypeNull    RowType = "null"
	TypeObject  RowType = "object"
	TypeArray   RowType = "array"
)

// IsContainer reports whether rows of this type summarize a nested object or array.
func (t RowType) IsContainer() bool {
	return t == TypeObject || t == TypeArray
}

// FieldRow is one displayed attribute of a node.
type FieldRow struct {
	Key   string
	Value string // scalar text as displayed, or a summary for container rows
	Type  RowType
	Bare  bool // the row has no key: the node is a single scalar
}

// Editable reports whether the row can be changed through an edit form.
// Container rows are edited through their own child nodes.
func (r FieldRow) Editable() bool { return !r.Type.IsContainer() }

// scalar returns the JSON value the row currently displays.
func (r FieldRow) scalar() any {
	switch r.Type {
	case TypeString:
		return r.Value
	case TypeNumber:
		if isNumberLiteral(r.Value) {
			return json.Number(r.Value)
		}
		return r.Value
	case TypeBoolean:
		switch r.Value {
		case "true":
			return true
		case "false":
			return false
		}
		return r.Value
	case TypeNull:
		return nil
	default:
		return Coerce(r.Value)
	}
}

func isNumberLiteral(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

// NodeSnapshot is the selected node: its rows and where it lives in the document.
type NodeSnapshot struct {
	ID   string
	Path Path
	Rows []FieldRow
}

// IsBare reports whether the node is a single scalar with no key.
func (n NodeSnapshot) IsBare() bool {
	return len(n.Rows) == 1 && n.Rows[0].Bare
}

// identity is what the session compares to notice a selection change.
func (n NodeSnapshot) identity() string {
	return n.ID + "\x00" + n.Path.String()
}

// EditForm maps field keys to their edited text. A bare node uses the single key "".
type EditForm map[string]string

// NewEditForm returns a form holding the current text of every editable row.
func NewEditForm(node NodeSnapshot) EditForm {
	if node.IsBare() {
		return EditForm{"": node.Rows[0].Value}
	}
	form := EditForm{}
	for _, r := range node.Rows {
		if r.Editable() {
			form[r.Key] = r.Value
		}
	}
	return form
}

// Clone returns an independent copy of the form.
func (f EditForm) Clone() EditForm {
	if f == nil {
		return nil
	}
	return maps.Clone(f)
}

// DisplayValue renders rows for display. No rows show as {}, a bare row shows
// its raw text, and anything else is a pretty-printed JSON object of the
// scalar rows in row order. Container rows are left out.
func DisplayValue(rows []FieldRow) string {
	if len(rows) == 0 {
		return "{}"
	}
	if len(rows) == 1 && rows[0].Bare {
		return rows[0].Value
	}
	obj := gyaml.MapSlice{}
	for _, r := range rows {
		if !r.Editable() {
			continue
		}
		obj = objectSet(obj, r.Key, r.scalar())
	}
	b, err := EncodeJSON(obj, defaultIndent)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ReplacementValue builds the value to install at node.Path from form.
//
// A bare node yields a single scalar. Any other node yields a flat Object
// with one member per form entry, in row order; nested containers are never
// part of it. Text that differs from the row's original text goes through
// Coerce, unchanged text keeps the row's original JSON type.
func ReplacementValue(node NodeSnapshot, form EditForm) any {
	if node.IsBare() {
		row := node.Rows[0]
		text, ok := form[""]
		if !ok {
			return row.scalar()
		}
		return fieldValue(row, text)
	}
	obj := make(gyaml.MapSlice, 0, len(form))
	seen := make(map[string]bool, len(form))
	for _, r := range node.Rows {
		if !r.Editable() || seen[r.Key] {
			continue
		}
		text, ok := form[r.Key]
		if !ok {
			continue
		}
		seen[r.Key] = true
		obj = append(obj, gyaml.MapItem{Key: r.Key, Value: fieldValue(r, text)})
	}
	for _, k := range sortedKeys(form) {
		if !seen[k] {
			obj = append(obj, gyaml.MapItem{Key: k, Value: Coerce(form[k])})
		}
	}
	return obj
}

func fieldValue(r FieldRow, text string) any {
	if text == r.Value {
		return r.scalar()
	}
	return Coerce(text)
}

// ApplyForm returns a copy of node whose rows show the edited text. Rows
// whose text changed get the type of their coerced value.
func ApplyForm(node NodeSnapshot, form EditForm) NodeSnapshot {
	out := NodeSnapshot{
		ID:   node.ID,
		Path: append(Path(nil), node.Path...),
		Rows: make([]FieldRow, len(node.Rows)),
	}
	bare := node.IsBare()
	for i, r := range node.Rows {
		key := r.Key
		if bare {
			key = ""
		}
		if text, ok := form[key]; ok && r.Editable() && text != r.Value {
			r.Value = text
			r.Type = kindOf(Coerce(text))
		}
		out.Rows[i] = r
	}
	return out
}
