package jsonedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodesFlattensDocument(t *testing.T) {
	doc := mustDecode(t, `{
		"name": "svc",
		"port": 80,
		"tls": {"enabled": false, "cert": null},
		"hosts": ["a.example", {"name": "b.example", "weight": 2}]
	}`)
	nodes := Nodes(doc)

	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{
		`$`,
		`$["tls"]`,
		`$["hosts"][0]`,
		`$["hosts"][1]`,
	}, ids)

	root := nodes[0]
	assert.Equal(t, []FieldRow{
		{Key: "name", Value: "svc", Type: TypeString},
		{Key: "port", Value: "80", Type: TypeNumber},
		{Key: "tls", Value: "{2}", Type: TypeObject},
		{Key: "hosts", Value: "[2]", Type: TypeArray},
	}, root.Rows)

	tls := nodes[1]
	assert.True(t, tls.Path.Equal(MustPath("tls")))
	assert.Equal(t, []FieldRow{
		{Key: "enabled", Value: "false", Type: TypeBoolean},
		{Key: "cert", Value: "null", Type: TypeNull},
	}, tls.Rows)

	host0 := nodes[2]
	assert.True(t, host0.IsBare())
	assert.Equal(t, "a.example", DisplayValue(host0.Rows))
}

func TestNodesScalarRoot(t *testing.T) {
	nodes := Nodes(mustDecode(t, `"just text"`))
	require.Len(t, nodes, 1)
	assert.Equal(t, "$", nodes[0].ID)
	assert.Len(t, nodes[0].Path, 0)
	assert.True(t, nodes[0].IsBare())
}

func TestNodeAt(t *testing.T) {
	doc := mustDecode(t, `{"a":{"b":[1,{"c":true}]}}`)

	n, ok := NodeAt(doc, MustPath("a", "b", 1))
	require.True(t, ok)
	assert.Equal(t, `$["a"]["b"][1]`, n.ID)
	assert.Equal(t, []FieldRow{{Key: "c", Value: "true", Type: TypeBoolean}}, n.Rows)

	n, ok = NodeAt(doc, MustPath("a", "b", 0))
	require.True(t, ok)
	assert.True(t, n.IsBare())

	_, ok = NodeAt(doc, MustPath("a", "b"))
	assert.False(t, ok, "arrays have no node")
	_, ok = NodeAt(doc, MustPath("missing"))
	assert.False(t, ok)
}
