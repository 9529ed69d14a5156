// Package jsonedit writes an edited node back into a JSON document.
//
// A node is addressed by a Path of object keys and array indices. Install
// places a replacement value at that path on a private copy of the document,
// creating any missing intermediate objects or arrays, and Session drives the
// view/edit/save cycle against external document and selection stores.
package jsonedit

import (
	"fmt"

	gyaml "github.com/goccy/go-yaml"
)

// Install returns a copy of root with replacement stored at path.
//
// An empty path returns replacement itself: it becomes the new document root.
// Otherwise root is deep-copied first and never modified. While walking the
// path every container must have the kind the next segment asks for (an
// index needs an array, a key needs an object); anything else found there,
// including a container of the other kind, is discarded and replaced by a
// fresh empty container. Indices past the end of an array extend it with
// nulls, up to MaxArrayGap elements past the end; a path reaching further
// leaves the copy unchanged. The final segment is overwritten whatever it
// held before.
func Install(root any, path Path, replacement any) any {
	out, err := install(root, path, replacement, false)
	if err != nil {
		return cloneValue(root)
	}
	return out
}

// InstallStrict behaves like Install but refuses to discard data: when a
// present, non-null value along the path has the wrong kind it returns an
// error wrapping ErrPathMismatch. Missing or null values are still created.
// An index more than MaxArrayGap past the end of its array is reported with
// an error wrapping ErrIndexOutOfRange.
func InstallStrict(root any, path Path, replacement any) (any, error) {
	return install(root, path, replacement, true)
}

// MaxArrayGap is how many nulls an install may insert to reach an index past
// the end of an array.
const MaxArrayGap = 1 << 16

func install(root any, path Path, replacement any, strict bool) (any, error) {
	if len(path) == 0 {
		return replacement, nil
	}
	return installAt(cloneValue(root), path, 0, replacement, strict)
}

// installAt stores repl under path[i:] inside cur and returns the (possibly
// new) container that now stands in for cur.
func installAt(cur any, path Path, i int, repl any, strict bool) (any, error) {
	seg := path[i]
	cur, err := containerFor(cur, path, i, strict)
	if err != nil {
		return nil, err
	}
	if t, ok := cur.([]any); ok && seg.index-len(t) > MaxArrayGap {
		return nil, fmt.Errorf("%w: %s has %d elements, want index %d", ErrIndexOutOfRange, path[:i], len(t), seg.index)
	}
	if i == len(path)-1 {
		return assign(cur, seg, repl), nil
	}
	child, _ := Lookup(cur, Path{seg})
	child, err = installAt(child, path, i+1, repl, strict)
	if err != nil {
		return nil, err
	}
	return assign(cur, seg, child), nil
}

// containerFor returns cur when it can be indexed by path[i], or a fresh
// container of the required kind.
func containerFor(cur any, path Path, i int, strict bool) (any, error) {
	seg := path[i]
	switch cur.(type) {
	case []any:
		if seg.isIdx {
			return cur, nil
		}
	case gyaml.MapSlice:
		if !seg.isIdx {
			return cur, nil
		}
	}
	want := TypeObject
	if seg.isIdx {
		want = TypeArray
	}
	if strict && cur != nil {
		return nil, fmt.Errorf("%w: %s holds %s, want %s", ErrPathMismatch, path[:i], kindOf(cur), want)
	}
	if seg.isIdx {
		return []any{}, nil
	}
	return gyaml.MapSlice{}, nil
}

func assign(cur any, seg Segment, val any) any {
	switch t := cur.(type) {
	case []any:
		if n := seg.index + 1 - len(t); n > 0 {
			t = append(t, make([]any, n)...)
		}
		t[seg.index] = val
		return t
	case gyaml.MapSlice:
		return objectSet(t, seg.key, val)
	default:
		// containerFor guarantees one of the cases above.
		panic(fmt.Sprintf("jsonedit: assign into %T", cur))
	}
}
