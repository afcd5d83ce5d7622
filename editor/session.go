// Package editor holds the draft of one note being composed or edited and turns save
// and cancel commands into a single create or update call.
//
// A Session is Closed until Begin opens it, and closes again after a successful
// Commit or any Cancel. A failed save leaves it open with the draft intact.
package editor

import (
	"context"
	"strings"

	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
)

var (
	ErrSessionOpen   = errors.New("editor session already open")
	ErrSessionClosed = errors.New("editor session is closed")
)

type Mode int

const (
	ModeNew Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "new"
}

// Saver persists a committed draft. *store.NoteStore satisfies it.
type Saver interface {
	Create(ctx context.Context, title, content string) error
	Update(ctx context.Context, id, title, content string) error
}

type Session struct {
	open    bool
	target  *types.Note
	title   string
	content string
}

// Begin opens the session on note, or on an empty draft when note is nil.
func (s *Session) Begin(note *types.Note) error {
	if s.open {
		return ErrSessionOpen
	}
	s.open = true
	s.target = nil
	s.title, s.content = "", ""
	if note != nil {
		target := *note
		s.target = &target
		s.title, s.content = note.Title, note.Content
	}
	return nil
}

func (s *Session) SetTitle(text string) {
	if s.open {
		s.title = text
	}
}

func (s *Session) SetContent(text string) {
	if s.open {
		s.content = text
	}
}

func (s *Session) IsOpen() bool {
	return s.open
}

func (s *Session) Mode() Mode {
	if s.target != nil {
		return ModeEditing
	}
	return ModeNew
}

func (s *Session) Heading() string {
	if s.Mode() == ModeEditing {
		return "Edit Note"
	}
	return "New Note"
}

// Target returns the note being edited, or nil for a new note.
func (s *Session) Target() *types.Note {
	if s.target == nil {
		return nil
	}
	target := *s.target
	return &target
}

func (s *Session) Title() string {
	return s.title
}

func (s *Session) Content() string {
	return s.content
}

// CanSave reports whether Commit would call the Saver.
func (s *Session) CanSave() bool {
	return s.open && (strings.TrimSpace(s.title) != "" || strings.TrimSpace(s.content) != "")
}

// Commit trims the draft and hands it to saver. A blank draft is a silent no-op that
// returns false and a nil error.
func (s *Session) Commit(ctx context.Context, saver Saver) (bool, error) {
	if !s.open {
		return false, ErrSessionClosed
	}
	if !s.CanSave() {
		return false, nil
	}

	s.title = strings.TrimSpace(s.title)
	s.content = strings.TrimSpace(s.content)

	var err error
	if s.target == nil {
		err = saver.Create(ctx, s.title, s.content)
	} else {
		err = saver.Update(ctx, s.target.ID, s.title, s.content)
	}
	if err != nil {
		return false, err
	}

	s.close()
	return true, nil
}

// Cancel discards the draft without confirmation.
func (s *Session) Cancel() {
	s.close()
}

func (s *Session) close() {
	s.open = false
	s.target = nil
	s.title, s.content = "", ""
}
