package store

import (
	"fmt"

	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
)

// ErrorKind classifies every failure a NoteStore reports to its caller.
type ErrorKind int

const (
	LoadFailure ErrorKind = iota + 1
	SaveFailure
	DeleteFailure
	AuthRequired
)

func (k ErrorKind) String() string {
	switch k {
	case LoadFailure:
		return "load failure"
	case SaveFailure:
		return "save failure"
	case DeleteFailure:
		return "delete failure"
	case AuthRequired:
		return "authentication required"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Notice is the user-visible notification for a failure of this kind.
func (k ErrorKind) Notice() types.Toast {
	switch k {
	case LoadFailure:
		return types.Toast{Title: "Error loading notes", Description: "Failed to load your notes. Please try again.", Destructive: true}
	case SaveFailure:
		return types.Toast{Title: "Error saving note", Description: "Failed to save your note. Please try again.", Destructive: true}
	case DeleteFailure:
		return types.Toast{Title: "Error deleting note", Description: "Failed to delete your note. Please try again.", Destructive: true}
	case AuthRequired:
		return types.Toast{Title: "Sign in required", Description: "Please sign in to manage your notes.", Destructive: true}
	}
	return types.Toast{Title: "Something went wrong", Description: "Please try again.", Destructive: true}
}

// Error carries the kind of a failed NoteStore operation and its cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrLoadFailure   = &Error{Kind: LoadFailure}
	ErrSaveFailure   = &Error{Kind: SaveFailure}
	ErrDeleteFailure = &Error{Kind: DeleteFailure}
	ErrAuthRequired  = &Error{Kind: AuthRequired}

	ErrNoteNotFound = errors.New("note not found")
)

func (e *Error) Error() string {
	if e.Op == "" && e.Err == nil {
		return e.Kind.String()
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
