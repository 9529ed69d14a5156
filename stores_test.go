package jsonedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDocumentRevision(t *testing.T) {
	d := NewMemoryDocument("{}")
	assert.Equal(t, "{}", d.Text())
	assert.Equal(t, 0, d.Revision())

	d.SetText(`{"a":1}`)
	d.SetText(`{"a":1}`)
	assert.Equal(t, `{"a":1}`, d.Text())
	assert.Equal(t, 2, d.Revision())
}

func TestSelectionReturnsCopies(t *testing.T) {
	sel := NewSelection()
	_, ok := sel.Selected()
	assert.False(t, ok)

	sel.Select(NodeSnapshot{ID: "n", Path: MustPath("a"), Rows: []FieldRow{{Key: "k", Value: "v"}}})
	got, ok := sel.Selected()
	require.True(t, ok)
	got.Rows[0].Value = "mutated"
	got.Path[0] = Key("b")

	again, _ := sel.Selected()
	assert.Equal(t, "v", again.Rows[0].Value)
	assert.Equal(t, `$["a"]`, again.Path.String())
}

func TestSelectionNotifiesSubscribers(t *testing.T) {
	sel := NewSelection()
	var events []string
	sel.Subscribe(func(n NodeSnapshot, ok bool) {
		if !ok {
			events = append(events, "cleared")
			return
		}
		events = append(events, n.ID)
	})

	doc := mustDecode(t, `{"a":{"b":1},"list":[1]}`)
	require.True(t, sel.SelectPath(doc, MustPath("a")))
	assert.False(t, sel.SelectPath(doc, MustPath("list")), "arrays are not selectable")
	assert.False(t, sel.SelectPath(doc, MustPath("nope")))
	sel.UpdateNode(NodeSnapshot{ID: `$["a"]`, Path: MustPath("a")})
	sel.Clear()

	assert.Equal(t, []string{`$["a"]`, "cleared"}, events)
	_, ok := sel.Selected()
	assert.False(t, ok)
}
