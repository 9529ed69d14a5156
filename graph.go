package jsonedit

import (
	"encoding/json"
	"fmt"
	"strconv"

	gyaml "github.com/goccy/go-yaml"
)

// Nodes flattens doc into the nodes of its graph, in pre-order.
//
// Every object is a node whose scalar members are rows; object and array
// members appear as summary rows and get nodes of their own. Arrays have no
// node: each element is one, scalars as a single bare row. A scalar document
// is one bare node at the root.
func Nodes(doc any) []NodeSnapshot {
	var out []NodeSnapshot
	walkNodes(cloneValue(doc), Path{}, &out)
	return out
}

func walkNodes(v any, path Path, out *[]NodeSnapshot) {
	switch t := v.(type) {
	case gyaml.MapSlice:
		*out = append(*out, objectNode(t, path))
		for _, it := range t {
			if isContainer(it.Value) {
				walkNodes(it.Value, path.Child(Key(keyString(it.Key))), out)
			}
		}
	case []any:
		for i, e := range t {
			walkNodes(e, path.Child(Index(i)), out)
		}
	default:
		*out = append(*out, bareNode(t, path))
	}
}

// NodeAt returns the node for the value at path inside doc. Arrays and
// missing paths have no node.
func NodeAt(doc any, path Path) (NodeSnapshot, bool) {
	v, ok := Lookup(cloneValue(doc), path)
	if !ok {
		return NodeSnapshot{}, false
	}
	switch t := v.(type) {
	case gyaml.MapSlice:
		return objectNode(t, path), true
	case []any:
		return NodeSnapshot{}, false
	default:
		return bareNode(t, path), true
	}
}

func objectNode(obj gyaml.MapSlice, path Path) NodeSnapshot {
	node := NodeSnapshot{ID: path.String(), Path: append(Path(nil), path...), Rows: make([]FieldRow, 0, len(obj))}
	for _, it := range obj {
		text, typ := scalarText(it.Value)
		node.Rows = append(node.Rows, FieldRow{Key: keyString(it.Key), Value: text, Type: typ})
	}
	return node
}

func bareNode(v any, path Path) NodeSnapshot {
	text, typ := scalarText(v)
	return NodeSnapshot{
		ID:   path.String(),
		Path: append(Path(nil), path...),
		Rows: []FieldRow{{Value: text, Type: typ, Bare: true}},
	}
}

// scalarText returns the display text and row type of v. Containers are
// summarized as {N} or [N].
func scalarText(v any) (string, RowType) {
	switch t := v.(type) {
	case nil:
		return "null", TypeNull
	case bool:
		return strconv.FormatBool(t), TypeBoolean
	case json.Number:
		return string(t), TypeNumber
	case string:
		return t, TypeString
	case gyaml.MapSlice:
		return fmt.Sprintf("{%d}", len(t)), TypeObject
	case []any:
		return fmt.Sprintf("[%d]", len(t)), TypeArray
	default:
		return fmt.Sprint(t), kindOf(t)
	}
}
