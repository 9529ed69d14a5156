package jsonedit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML document into the same ordered values DecodeJSON
// produces. Only JSON-compatible content is kept: numbers become json.Number
// (keeping their source text when it is already a JSON number), non-finite
// floats and unknown tags fall back to strings, and aliases are expanded.
// Documents whose aliases expand far beyond their own size are rejected.
func DecodeYAML(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return gyaml.MapSlice{}, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Format: FormatYAML, Offset: -1, Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return gyaml.MapSlice{}, nil
	}
	d := &yamlDecoder{budget: aliasExpansionBudget(len(data))}
	v, err := d.value(doc.Content[0], 0)
	if err != nil {
		return nil, &ParseError{Format: FormatYAML, Offset: -1, Err: err}
	}
	return v, nil
}

const (
	// maxAliasDepth bounds alias nesting so self-referencing anchors cannot recurse forever.
	maxAliasDepth = 64

	// aliasNodesPerByte and minAliasNodes bound how many nodes alias
	// expansion may produce, relative to the input size.
	aliasNodesPerByte = 100
	minAliasNodes     = 10000
)

func aliasExpansionBudget(size int) int {
	return minAliasNodes + aliasNodesPerByte*size
}

// yamlDecoder converts a yaml.v3 node tree, counting every node it produces.
type yamlDecoder struct {
	nodes  int
	budget int
}

func (d *yamlDecoder) value(n *yaml.Node, aliases int) (any, error) {
	d.nodes++
	if d.nodes > d.budget {
		return nil, fmt.Errorf("line %d: document contains excessive aliasing", n.Line)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth || n.Alias == nil {
			return nil, fmt.Errorf("line %d: alias nesting too deep", n.Line)
		}
		return d.value(n.Alias, aliases+1)
	case yaml.MappingNode:
		obj := gyaml.MapSlice{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := d.value(n.Content[i+1], aliases)
			if err != nil {
				return nil, err
			}
			obj = objectSet(obj, n.Content[i].Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := d.value(c, aliases)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalar(n), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %v", n.Line, n.Kind)
	}
}

func yamlScalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int", "!!float":
		if isNumberLiteral(n.Value) {
			return json.Number(n.Value)
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return json.Number(strconv.FormatInt(i, 10))
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return json.Number(strconv.FormatUint(u, 10))
		}
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return json.Number(formatNumber(f))
		}
	}
	return n.Value
}

// EncodeYAML renders v as a block-style YAML document with the given indent
// (2 when indent <= 0). Object member order is kept.
func EncodeYAML(v any, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(valueToYAMLNode(v)); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("jsonedit: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("jsonedit: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func valueToYAMLNode(v any) *yaml.Node {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlNumberTag(string(t)), Value: string(t)}
	case int, int64, float64:
		return valueToYAMLNode(cloneValue(t))
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(t) == 0 {
			seq.Style = yaml.FlowStyle
		}
		for _, e := range t {
			seq.Content = append(seq.Content, valueToYAMLNode(e))
		}
		return seq
	case map[string]any:
		return valueToYAMLNode(cloneValue(t))
	case gyaml.MapSlice:
		mp := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if len(t) == 0 {
			mp.Style = yaml.FlowStyle
		}
		for _, it := range t {
			mp.Content = append(mp.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: keyString(it.Key)},
				valueToYAMLNode(it.Value),
			)
		}
		return mp
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(t)}
	}
}

// yamlNumberTag returns the tag a YAML 1.2 reader resolves number text to.
// Integers outside the 64-bit range resolve as floats, so tagging them !!int
// would make the encoder print the tag explicitly.
func yamlNumberTag(text string) string {
	if strings.ContainsAny(text, ".eE") {
		return "!!float"
	}
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return "!!int"
	}
	if _, err := strconv.ParseUint(text, 10, 64); err == nil {
		return "!!int"
	}
	return "!!float"
}
