package jsonedit

import (
	"encoding/json"
	"testing"

	gyaml "github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayValueEmpty(t *testing.T) {
	assert.Equal(t, "{}", DisplayValue(nil))
}

func TestDisplayValueBareNode(t *testing.T) {
	rows := []FieldRow{{Value: "5", Type: TypeNumber, Bare: true}}
	assert.Equal(t, "5", DisplayValue(rows))

	rows = []FieldRow{{Value: "hello", Type: TypeString, Bare: true}}
	assert.Equal(t, "hello", DisplayValue(rows), "bare strings are shown unquoted")
}

func TestDisplayValueFlatRows(t *testing.T) {
	rows := []FieldRow{
		{Key: "a", Value: "1", Type: TypeNumber},
		{Key: "b", Value: "x", Type: TypeString},
		{Key: "c", Value: "[3]", Type: TypeArray},
	}
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": \"x\"\n}", DisplayValue(rows))
}

func TestDisplayValueUsesRowTypes(t *testing.T) {
	rows := []FieldRow{
		{Key: "s", Value: "42", Type: TypeString},
		{Key: "n", Value: "42", Type: TypeNumber},
		{Key: "b", Value: "true", Type: TypeBoolean},
		{Key: "z", Value: "null", Type: TypeNull},
		{Key: "o", Value: "{2}", Type: TypeObject},
	}
	assert.Equal(t, "{\n  \"s\": \"42\",\n  \"n\": 42,\n  \"b\": true,\n  \"z\": null\n}", DisplayValue(rows))
}

func TestNewEditFormHoldsEditableKeys(t *testing.T) {
	node := NodeSnapshot{Path: MustPath("svc"), Rows: []FieldRow{
		{Key: "name", Value: "api", Type: TypeString},
		{Key: "port", Value: "80", Type: TypeNumber},
		{Key: "env", Value: "{3}", Type: TypeObject},
		{Key: "args", Value: "[2]", Type: TypeArray},
	}}
	assert.Equal(t, EditForm{"name": "api", "port": "80"}, NewEditForm(node))

	bare := NodeSnapshot{Path: MustPath("list", 0), Rows: []FieldRow{{Value: "x", Type: TypeString, Bare: true}}}
	assert.Equal(t, EditForm{"": "x"}, NewEditForm(bare))
}

func TestReplacementValueBareNode(t *testing.T) {
	node := NodeSnapshot{Rows: []FieldRow{{Value: "5", Type: TypeNumber, Bare: true}}}
	assert.Equal(t, json.Number("5"), ReplacementValue(node, EditForm{}), "absent form entry falls back to the row")
	assert.Equal(t, json.Number("6"), ReplacementValue(node, EditForm{"": "6"}))
	assert.Equal(t, true, ReplacementValue(node, EditForm{"": "true"}))
	assert.Equal(t, "007", ReplacementValue(node, EditForm{"": "007"}))
	assert.Nil(t, ReplacementValue(node, EditForm{"": "null"}))
}

func TestReplacementValueObjectOmitsContainers(t *testing.T) {
	node := NodeSnapshot{Rows: []FieldRow{
		{Key: "b", Value: "old", Type: TypeString},
		{Key: "nested", Value: "{1}", Type: TypeObject},
		{Key: "a", Value: "1", Type: TypeNumber},
	}}
	form := EditForm{"a": "2", "b": "false"}
	got := ReplacementValue(node, form)
	want := gyaml.MapSlice{
		{Key: "b", Value: false},
		{Key: "a", Value: json.Number("2")},
	}
	assert.Equal(t, want, got)
}

func TestReplacementValueUnchangedTextKeepsType(t *testing.T) {
	node := NodeSnapshot{Rows: []FieldRow{
		{Key: "zip", Value: "02134", Type: TypeString},
		{Key: "code", Value: "42", Type: TypeString},
		{Key: "flag", Value: "true", Type: TypeString},
		{Key: "count", Value: "3", Type: TypeNumber},
	}}
	got := ReplacementValue(node, NewEditForm(node))
	assert.Equal(t, `{"zip":"02134","code":"42","flag":"true","count":3}`, compact(t, got))

	// An edited field is coerced from its new text.
	form := NewEditForm(node)
	form["code"] = "43"
	got = ReplacementValue(node, form)
	assert.Equal(t, `{"zip":"02134","code":43,"flag":"true","count":3}`, compact(t, got))
}

func TestReplacementValueEmptyNode(t *testing.T) {
	got := ReplacementValue(NodeSnapshot{}, EditForm{})
	assert.Equal(t, "{}", compact(t, got))
}

func TestApplyFormUpdatesRows(t *testing.T) {
	node := NodeSnapshot{ID: "n1", Path: MustPath("a"), Rows: []FieldRow{
		{Key: "x", Value: "1", Type: TypeNumber},
		{Key: "y", Value: "keep", Type: TypeString},
		{Key: "kids", Value: "[1]", Type: TypeArray},
	}}
	out := ApplyForm(node, EditForm{"x": "hello", "y": "keep", "kids": "ignored"})
	require.Len(t, out.Rows, 3)
	assert.Equal(t, FieldRow{Key: "x", Value: "hello", Type: TypeString}, out.Rows[0])
	assert.Equal(t, node.Rows[1], out.Rows[1])
	assert.Equal(t, node.Rows[2], out.Rows[2])
	assert.Equal(t, "n1", out.ID)
	assert.Equal(t, "1", node.Rows[0].Value, "input rows must be untouched")

	bare := NodeSnapshot{Rows: []FieldRow{{Value: "1", Type: TypeNumber, Bare: true}}}
	out = ApplyForm(bare, EditForm{"": "null"})
	assert.Equal(t, FieldRow{Value: "null", Type: TypeNull, Bare: true}, out.Rows[0])
}

func TestEditFormClone(t *testing.T) {
	f := EditForm{"a": "1"}
	c := f.Clone()
	c["a"] = "2"
	assert.Equal(t, "1", f["a"])
	assert.Nil(t, EditForm(nil).Clone())
}
