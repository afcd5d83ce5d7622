package editor

import (
	"context"
	"testing"

	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op, id, title, content string
}

type recordingSaver struct {
	calls []call
	err   error
}

func (r *recordingSaver) Create(ctx context.Context, title, content string) error {
	r.calls = append(r.calls, call{op: "create", title: title, content: content})
	return r.err
}

func (r *recordingSaver) Update(ctx context.Context, id, title, content string) error {
	r.calls = append(r.calls, call{op: "update", id: id, title: title, content: content})
	return r.err
}

func TestBeginNew(t *testing.T) {
	var s Session
	require.NoError(t, s.Begin(nil))
	assert.True(t, s.IsOpen())
	assert.Equal(t, ModeNew, s.Mode())
	assert.Equal(t, "New Note", s.Heading())
	assert.Nil(t, s.Target())
	assert.Empty(t, s.Title())
	assert.Empty(t, s.Content())
	assert.False(t, s.CanSave())
}

func TestBeginEditingCopiesNote(t *testing.T) {
	note := types.Note{ID: "n1", Title: "Groceries", Content: "Milk, eggs"}
	var s Session
	require.NoError(t, s.Begin(&note))
	assert.Equal(t, ModeEditing, s.Mode())
	assert.Equal(t, "Edit Note", s.Heading())
	assert.Equal(t, "Groceries", s.Title())
	assert.Equal(t, "Milk, eggs", s.Content())

	s.SetTitle("changed")
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, "n1", s.Target().ID)
}

func TestBeginWhileOpenFails(t *testing.T) {
	var s Session
	require.NoError(t, s.Begin(nil))
	s.SetContent("draft")
	assert.ErrorIs(t, s.Begin(&types.Note{ID: "n1"}), ErrSessionOpen)
	assert.Equal(t, "draft", s.Content())
	assert.Equal(t, ModeNew, s.Mode())
}

func TestCommitBlankIsNoOp(t *testing.T) {
	saver := &recordingSaver{}
	var s Session
	require.NoError(t, s.Begin(nil))
	s.SetTitle("   ")
	s.SetContent("\n\t")

	committed, err := s.Commit(context.Background(), saver)
	require.NoError(t, err)
	assert.False(t, committed)
	assert.Empty(t, saver.calls)
	assert.True(t, s.IsOpen())
}

func TestCommitCreateTrimsAndCloses(t *testing.T) {
	saver := &recordingSaver{}
	var s Session
	require.NoError(t, s.Begin(nil))
	s.SetTitle("  Groceries ")
	s.SetContent(" Milk, eggs\n")

	committed, err := s.Commit(context.Background(), saver)
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, []call{{op: "create", title: "Groceries", content: "Milk, eggs"}}, saver.calls)
	assert.False(t, s.IsOpen())
}

func TestCommitUpdateUsesTarget(t *testing.T) {
	saver := &recordingSaver{}
	var s Session
	require.NoError(t, s.Begin(&types.Note{ID: "n1", Title: "Groceries", Content: "Milk, eggs"}))
	s.SetContent("Milk, eggs, bread")

	committed, err := s.Commit(context.Background(), saver)
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, []call{{op: "update", id: "n1", title: "Groceries", content: "Milk, eggs, bread"}}, saver.calls)
}

func TestCommitOnlyTitleOrOnlyContent(t *testing.T) {
	for name, set := range map[string]func(*Session){
		"title":   func(s *Session) { s.SetTitle("only title") },
		"content": func(s *Session) { s.SetContent("only content") },
	} {
		t.Run(name, func(t *testing.T) {
			saver := &recordingSaver{}
			var s Session
			require.NoError(t, s.Begin(nil))
			set(&s)
			committed, err := s.Commit(context.Background(), saver)
			require.NoError(t, err)
			assert.True(t, committed)
			assert.Len(t, saver.calls, 1)
		})
	}
}

func TestCommitFailureKeepsSessionOpen(t *testing.T) {
	saver := &recordingSaver{err: errors.New("save failure")}
	var s Session
	require.NoError(t, s.Begin(nil))
	s.SetTitle(" Groceries ")

	committed, err := s.Commit(context.Background(), saver)
	assert.Error(t, err)
	assert.False(t, committed)
	assert.True(t, s.IsOpen())
	assert.Equal(t, "Groceries", s.Title())

	saver.err = nil
	committed, err = s.Commit(context.Background(), saver)
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Len(t, saver.calls, 2)
}

func TestCommitClosedSession(t *testing.T) {
	var s Session
	_, err := s.Commit(context.Background(), &recordingSaver{})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestCancelDiscardsDraft(t *testing.T) {
	var s Session
	require.NoError(t, s.Begin(&types.Note{ID: "n1", Title: "t"}))
	s.SetContent("unsaved")
	s.Cancel()
	assert.False(t, s.IsOpen())
	assert.Nil(t, s.Target())
	assert.Empty(t, s.Content())

	s.SetTitle("ignored")
	assert.Empty(t, s.Title())
	require.NoError(t, s.Begin(nil))
}

func TestSignals(t *testing.T) {
	assert.Equal(t, SignalSave, ParseSignal(""))
	assert.Equal(t, SignalSave, ParseSignal("Save"))
	assert.Equal(t, SignalSave, ParseSignal("ctrl+s"))
	assert.Equal(t, SignalEscape, ParseSignal("escape"))
	assert.Equal(t, SignalEscape, ParseSignal("cancel"))
	assert.Equal(t, SignalNone, ParseSignal("publish"))

	ctx := context.Background()
	saver := &recordingSaver{}

	var s Session
	require.NoError(t, s.Begin(nil))
	closed, err := s.Signal(ctx, SignalSave, saver)
	require.NoError(t, err)
	assert.False(t, closed)
	assert.Empty(t, saver.calls)

	s.SetTitle("x")
	closed, err = s.Signal(ctx, SignalSave, saver)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Len(t, saver.calls, 1)

	require.NoError(t, s.Begin(nil))
	s.SetTitle("never saved")
	closed, err = s.Signal(ctx, SignalEscape, saver)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Len(t, saver.calls, 1)

	require.NoError(t, s.Begin(nil))
	_, err = s.Signal(ctx, SignalNone, saver)
	assert.ErrorIs(t, err, ErrUnknownSignal)
	assert.True(t, s.IsOpen())
}
