package jsonedit

import (
	"fmt"
	"log/slog"
	"sync"

	jsonpatch "github.com/evanphx/json-patch/v5"
	gyaml "github.com/goccy/go-yaml"
)

// State is the mode of a Session.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SaveResult describes a completed save.
type SaveResult struct {
	Path    Path
	Value   any    // value installed at Path
	Text    string // document text written to the store
	Changed bool   // false when the new document equals the old one
	// MergePatch is an RFC 7396 merge patch turning the previous document
	// into the new one.
	MergePatch []byte
}

// Session edits the selected node and writes it back into the document.
//
// Every method first checks whether the selection changed since the session
// last looked; if it did, any open edit is dropped and the session goes back
// to Viewing before the call proceeds. Methods are safe for concurrent use,
// and a save's read-modify-write of the document runs under the session lock.
type Session struct {
	mu     sync.Mutex
	docs   DocumentStore
	sel    SelectionStore
	codec  codec
	strict bool
	log    *slog.Logger

	state State
	node  NodeSnapshot
	form  EditForm
	seen  string // identity of the last observed selection, "" for none
}

// NewSession returns a Viewing session over the given stores.
func NewSession(docs DocumentStore, sel SelectionStore, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{
		docs:   docs,
		sel:    sel,
		codec:  codec{format: o.format, indent: o.indent},
		strict: o.strict,
		log:    o.logger.With(slog.String("component", "edit-session")),
		state:  Viewing,
	}
	if node, ok := sel.Selected(); ok {
		s.seen = node.identity()
	}
	return s
}

// syncSelection applies the selection-change guard and returns the current selection.
func (s *Session) syncSelection() (NodeSnapshot, bool) {
	node, ok := s.sel.Selected()
	id := ""
	if ok {
		id = node.identity()
	}
	if id != s.seen {
		if s.state == Editing {
			s.log.Debug("selection changed, edit discarded", slog.String("path", s.node.Path.String()))
		}
		s.seen = id
		s.reset()
	}
	return node, ok
}

func (s *Session) reset() {
	s.state = Viewing
	s.form = nil
	s.node = NodeSnapshot{}
}

// SelectionChanged tells the session the selection was replaced. Any open
// edit is discarded even when the new node looks the same as the old one.
func (s *Session) SelectionChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.sel.Selected()
	s.seen = ""
	if ok {
		s.seen = node.identity()
	}
	if s.state == Editing {
		s.log.Debug("selection changed, edit discarded", slog.String("path", s.node.Path.String()))
	}
	s.reset()
}

// State returns the current mode.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncSelection()
	return s.state
}

// Form returns a copy of the open edit form, or nil while Viewing.
func (s *Session) Form() EditForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncSelection()
	return s.form.Clone()
}

// Display renders the selected node's rows with DisplayValue.
func (s *Session) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, _ := s.syncSelection()
	return DisplayValue(node.Rows)
}

// PathString renders the selected node's path, or "" when nothing is selected.
func (s *Session) PathString() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.syncSelection()
	if !ok {
		return ""
	}
	return node.Path.String()
}

// Start opens an edit form for the selected node.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.syncSelection()
	if !ok {
		return ErrNoSelection
	}
	if s.state == Editing {
		return ErrAlreadyEditing
	}
	s.node = node
	s.form = NewEditForm(node)
	s.state = Editing
	s.log.Debug("edit started", slog.String("path", node.Path.String()), slog.Int("fields", len(s.form)))
	return nil
}

// SetField sets the edited text of one form field.
func (s *Session) SetField(key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncSelection()
	if s.state != Editing {
		return ErrNotEditing
	}
	if _, ok := s.form[key]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, key)
	}
	s.form[key] = text
	s.log.Debug("field set", slog.String("path", s.node.Path.String()), slog.String("key", key))
	return nil
}

// Cancel drops the open edit without touching the document.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncSelection()
	if s.state == Editing {
		s.log.Debug("edit cancelled", slog.String("path", s.node.Path.String()))
	}
	s.reset()
}

// Save writes the open edit into the document and returns to Viewing,
// whether or not the write succeeds.
//
// The selection store gets the edited rows first. The document is then
// decoded (blank text counts as {}), the replacement is installed at the
// node's path and the result is encoded and written back. When the document
// cannot be decoded the store is left untouched and the *ParseError is returned.
func (s *Session) Save() (SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncSelection()
	if s.state != Editing {
		return SaveResult{}, ErrNotEditing
	}
	node, form := s.node, s.form
	defer s.reset()
	log := s.log.With(slog.String("path", node.Path.String()))

	repl := ReplacementValue(node, form)
	s.sel.UpdateNode(ApplyForm(node, form))

	before, err := s.codec.decode(s.docs.Text())
	if err != nil {
		log.Error("save aborted: cannot parse document", slog.Any("error", err))
		return SaveResult{}, err
	}
	if obj, ok := repl.(gyaml.MapSlice); ok {
		if cur, ok := Lookup(before, node.Path); ok {
			repl = carryOver(cur, obj)
		}
	}
	after, err := install(before, node.Path, repl, s.strict)
	if err != nil {
		log.Warn("save aborted: cannot install node", slog.Any("error", err))
		return SaveResult{}, err
	}
	text, err := s.codec.encode(after)
	if err != nil {
		log.Error("save aborted: cannot encode document", slog.Any("error", err))
		return SaveResult{}, err
	}
	s.docs.SetText(text)

	res := SaveResult{Path: append(Path(nil), node.Path...), Value: repl, Text: text}
	res.Changed, res.MergePatch, err = diffDocuments(before, after)
	if err != nil {
		log.Warn("cannot compute merge patch", slog.Any("error", err))
	}
	log.Info("node saved", slog.Bool("changed", res.Changed), slog.String("format", s.codec.format.String()))
	if res.Changed {
		log.Debug("document changed", slog.String("merge_patch", string(res.MergePatch)))
	}
	return res, nil
}

// carryOver keeps the members of the current object that repl does not
// name, in their original positions. Nested objects and arrays are never
// part of an edit form, so this is what keeps them in the document.
func carryOver(cur any, repl gyaml.MapSlice) gyaml.MapSlice {
	old, ok := cur.(gyaml.MapSlice)
	if !ok {
		return repl
	}
	out := make(gyaml.MapSlice, 0, len(old)+len(repl))
	used := make(map[string]bool, len(repl))
	for _, it := range old {
		k := keyString(it.Key)
		if v, ok := objectGet(repl, k); ok {
			if !used[k] {
				out = append(out, gyaml.MapItem{Key: k, Value: v})
				used[k] = true
			}
			continue
		}
		out = append(out, it)
	}
	for _, it := range repl {
		if k := keyString(it.Key); !used[k] {
			out = append(out, gyaml.MapItem{Key: k, Value: it.Value})
			used[k] = true
		}
	}
	return out
}

// diffDocuments reports whether after differs from before and returns a
// merge patch between them. Merge patches only diff objects; any other root
// is replaced wholesale, which is what a non-object merge patch means.
func diffDocuments(before, after any) (bool, []byte, error) {
	a, err := EncodeJSON(before, "")
	if err != nil {
		return true, nil, err
	}
	b, err := EncodeJSON(after, "")
	if err != nil {
		return true, nil, err
	}
	changed := !jsonpatch.Equal(a, b)
	_, objA := before.(gyaml.MapSlice)
	_, objB := after.(gyaml.MapSlice)
	if !objA || !objB {
		return changed, b, nil
	}
	patch, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return changed, nil, err
	}
	return changed, patch, nil
}
