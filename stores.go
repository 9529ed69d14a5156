package jsonedit

import (
	"slices"
	"sync"
)

// DocumentStore holds the authoritative serialized document.
type DocumentStore interface {
	Text() string
	SetText(text string)
}

// SelectionStore holds the node currently selected in the graph.
type SelectionStore interface {
	// Selected returns the selected node, or false when nothing is selected.
	Selected() (NodeSnapshot, bool)
	// UpdateNode replaces the selected node's rows after a save.
	UpdateNode(node NodeSnapshot)
}

// MemoryDocument is a DocumentStore kept in memory.
type MemoryDocument struct {
	mu       sync.RWMutex
	text     string
	revision int
}

// NewMemoryDocument returns a store holding text.
func NewMemoryDocument(text string) *MemoryDocument {
	return &MemoryDocument{text: text}
}

func (d *MemoryDocument) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

func (d *MemoryDocument) SetText(text string) {
	d.mu.Lock()
	d.text = text
	d.revision++
	d.mu.Unlock()
}

// Revision counts the SetText calls made so far.
func (d *MemoryDocument) Revision() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// Selection is an in-memory SelectionStore. Select, SelectPath and Clear
// notify subscribers; UpdateNode does not, since the selected node stays
// the same.
type Selection struct {
	mu        sync.RWMutex
	node      NodeSnapshot
	ok        bool
	listeners []func(NodeSnapshot, bool)
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

func (s *Selection) Selected() (NodeSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.node), s.ok
}

func (s *Selection) UpdateNode(node NodeSnapshot) {
	s.mu.Lock()
	s.node = cloneSnapshot(node)
	s.ok = true
	s.mu.Unlock()
}

// Select makes node the current selection.
func (s *Selection) Select(node NodeSnapshot) {
	s.mu.Lock()
	s.node = cloneSnapshot(node)
	s.ok = true
	s.mu.Unlock()
	s.notify(node, true)
}

// SelectPath selects the node at path inside doc. It reports false, leaving
// the selection alone, when path does not address a node.
func (s *Selection) SelectPath(doc any, path Path) bool {
	node, ok := NodeAt(doc, path)
	if !ok {
		return false
	}
	s.Select(node)
	return true
}

// Clear drops the current selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.node = NodeSnapshot{}
	s.ok = false
	s.mu.Unlock()
	s.notify(NodeSnapshot{}, false)
}

// Subscribe registers fn to be called after every selection change.
// Callbacks run on the goroutine that changed the selection, without locks held.
func (s *Selection) Subscribe(fn func(node NodeSnapshot, ok bool)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Selection) notify(node NodeSnapshot, ok bool) {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(cloneSnapshot(node), ok)
	}
}

func cloneSnapshot(n NodeSnapshot) NodeSnapshot {
	out := NodeSnapshot{ID: n.ID}
	if n.Path != nil {
		out.Path = append(Path{}, n.Path...)
	}
	if n.Rows != nil {
		out.Rows = append([]FieldRow{}, n.Rows...)
	}
	return out
}
