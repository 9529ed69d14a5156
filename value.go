package jsonedit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	gyaml "github.com/goccy/go-yaml"
)

// Object is an ordered JSON object. Member order is kept from decode to encode.
type Object = gyaml.MapSlice

// cloneValue returns an independent deep copy of v in canonical form:
// Object for objects (map[string]any is converted with sorted keys),
// []any for arrays, and json.Number for Go numeric kinds.
func cloneValue(v any) any {
	switch t := v.(type) {
	case gyaml.MapSlice:
		out := make(gyaml.MapSlice, 0, len(t))
		for _, it := range t {
			out = append(out, gyaml.MapItem{Key: keyString(it.Key), Value: cloneValue(it.Value)})
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(gyaml.MapSlice, 0, len(keys))
		for _, k := range keys {
			out = append(out, gyaml.MapItem{Key: k, Value: cloneValue(t[k])})
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case int:
		return json.Number(strconv.Itoa(t))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case float64:
		return json.Number(formatNumber(t))
	default:
		return t
	}
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

func objectGet(ms gyaml.MapSlice, key string) (any, bool) {
	for _, it := range ms {
		if keyString(it.Key) == key {
			return it.Value, true
		}
	}
	return nil, false
}

// objectSet replaces the first member named key, or appends a new member.
func objectSet(ms gyaml.MapSlice, key string, val any) gyaml.MapSlice {
	for i := range ms {
		if keyString(ms[i].Key) == key {
			ms[i].Value = val
			return ms
		}
	}
	return append(ms, gyaml.MapItem{Key: key, Value: val})
}

func isContainer(v any) bool {
	switch v.(type) {
	case gyaml.MapSlice, map[string]any, []any:
		return true
	}
	return false
}

// kindOf names the JSON kind of v for messages and row types.
func kindOf(v any) RowType {
	switch t := v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBoolean
	case json.Number, int, int64, float64:
		return TypeNumber
	case string:
		return TypeString
	case gyaml.MapSlice, map[string]any:
		return TypeObject
	case []any:
		return TypeArray
	default:
		return RowType(fmt.Sprintf("%T", t))
	}
}

// Lookup returns the value stored at path inside root. It never creates anything.
func Lookup(root any, path Path) (any, bool) {
	cur := root
	for _, seg := range path {
		switch t := cur.(type) {
		case gyaml.MapSlice:
			if seg.isIdx {
				return nil, false
			}
			v, ok := objectGet(t, seg.key)
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]any:
			if seg.isIdx {
				return nil, false
			}
			v, ok := t[seg.key]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			if !seg.isIdx || seg.index >= len(t) {
				return nil, false
			}
			cur = t[seg.index]
		default:
			return nil, false
		}
	}
	return cur, true
}
