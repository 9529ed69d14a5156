package jsonedit

import "errors"

var (
	// ErrNoSelection is returned by Session.Start when no node is selected.
	ErrNoSelection = errors.New("jsonedit: no node selected")
	// ErrAlreadyEditing is returned by Session.Start while an edit is open.
	ErrAlreadyEditing = errors.New("jsonedit: already editing")
	// ErrNotEditing is returned by operations that need an open edit.
	ErrNotEditing = errors.New("jsonedit: not editing")
	// ErrUnknownField is returned by Session.SetField for keys outside the edit form.
	ErrUnknownField = errors.New("jsonedit: unknown field")
	// ErrPathMismatch is wrapped by InstallStrict when the document shape
	// disagrees with the path.
	ErrPathMismatch = errors.New("jsonedit: path does not match document shape")
	// ErrIndexOutOfRange is wrapped when an array index lies more than
	// MaxArrayGap elements past the end of its array.
	ErrIndexOutOfRange = errors.New("jsonedit: array index out of range")
)
