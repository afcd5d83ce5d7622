// Package store holds the authoritative note list for one principal and is the only
// code allowed to reach the remote persistence service.
//
// Every mutation is followed by a full reload instead of a local patch, so the list
// always reflects server-assigned ids and timestamps.
package store

import (
	"context"
	"strings"

	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

// Principal is the authenticated user operations run on behalf of. The zero value
// means nobody is signed in.
type Principal struct {
	UserID string
	Email  string
}

func (p Principal) IsSet() bool {
	return p.UserID != ""
}

func PrincipalOf(u types.User) Principal {
	return Principal{UserID: u.ID, Email: u.Email}
}

// NoteStore is not safe for concurrent use. Build one per request or per UI session.
type NoteStore struct {
	remote    Remote
	principal Principal
	notes     []types.Note
}

func New(remote Remote, principal Principal) *NoteStore {
	return &NoteStore{
		remote:    remote,
		principal: principal,
		notes:     []types.Note{},
	}
}

func (s *NoteStore) Principal() Principal {
	return s.principal
}

func (s *NoteStore) logger(op string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"op":    op,
		"owner": s.principal.UserID,
	})
}

func (s *NoteStore) fail(op string, kind ErrorKind, noteID string, err error) error {
	e := &Error{Kind: kind, Op: op, Err: err}
	log := s.logger(op)
	if noteID != "" {
		log = log.WithField("note", noteID)
	}
	if kind == AuthRequired {
		log.Debug(e)
	} else {
		log.Error(e)
	}
	return e
}

// Load replaces the in-memory list with the principal's notes from the remote store.
// On failure the previous list is kept.
func (s *NoteStore) Load(ctx context.Context) error {
	if !s.principal.IsSet() {
		return s.fail("load", AuthRequired, "", nil)
	}

	notes, err := s.remote.ListNotes(ctx, s.principal.UserID)
	if err != nil {
		return s.fail("load", LoadFailure, "", err)
	}

	owned := make([]types.Note, 0, len(notes))
	for _, n := range notes {
		if n.OwnerID != s.principal.UserID {
			s.logger("load").WithField("note", n.ID).Warnf("Dropping note owned by %q", n.OwnerID)
			continue
		}
		owned = append(owned, n)
	}
	s.notes = owned
	logrus.Debugf("Loaded %d notes for %s", len(owned), s.principal.Email)
	return nil
}

func (s *NoteStore) Create(ctx context.Context, title, content string) error {
	if !s.principal.IsSet() {
		return s.fail("create", AuthRequired, "", nil)
	}

	note := types.Note{
		OwnerID: s.principal.UserID,
		Title:   title,
		Content: content,
	}
	if err := s.remote.InsertNote(ctx, &note); err != nil {
		return s.fail("create", SaveFailure, "", err)
	}
	if note.ID == "" {
		return s.fail("create", SaveFailure, "", errors.New("remote store did not assign a note id"))
	}
	logrus.Infof("Created note %s for %s", note.ID, s.principal.Email)

	return s.Load(ctx)
}

func (s *NoteStore) Update(ctx context.Context, id, title, content string) error {
	if !s.principal.IsSet() {
		return s.fail("update", AuthRequired, id, nil)
	}

	rows, err := s.remote.UpdateNote(ctx, id, s.principal.UserID, title, content)
	if err != nil {
		return s.fail("update", SaveFailure, id, err)
	}
	if rows == 0 {
		return s.fail("update", SaveFailure, id, ErrNoteNotFound)
	}
	logrus.Infof("Updated note %s for %s", id, s.principal.Email)

	return s.Load(ctx)
}

func (s *NoteStore) Delete(ctx context.Context, id string) error {
	if !s.principal.IsSet() {
		return s.fail("delete", AuthRequired, id, nil)
	}

	rows, err := s.remote.DeleteNote(ctx, id, s.principal.UserID)
	if err != nil {
		return s.fail("delete", DeleteFailure, id, err)
	}
	if rows == 0 {
		return s.fail("delete", DeleteFailure, id, ErrNoteNotFound)
	}
	logrus.Infof("Deleted note %s for %s", id, s.principal.Email)

	return s.Load(ctx)
}

// Notes returns a copy of the authoritative list.
func (s *NoteStore) Notes() []types.Note {
	ret := make([]types.Note, len(s.notes))
	copy(ret, s.notes)
	return ret
}

func (s *NoteStore) Find(id string) (types.Note, bool) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return types.Note{}, false
}

// Search filters the loaded list by a case-insensitive substring of title or content,
// keeping list order. It never calls the remote store.
func (s *NoteStore) Search(term string) []types.Note {
	if term == "" {
		return s.Notes()
	}

	fold := cases.Fold()
	needle := fold.String(term)
	ret := []types.Note{}
	for _, n := range s.notes {
		if strings.Contains(fold.String(n.Title), needle) || strings.Contains(fold.String(n.Content), needle) {
			ret = append(ret, n)
		}
	}
	return ret
}

// Profile looks up the principal's profile. A missing profile is not an error.
func (s *NoteStore) Profile(ctx context.Context) (types.Profile, bool, error) {
	if !s.principal.IsSet() {
		return types.Profile{}, false, s.fail("profile", AuthRequired, "", nil)
	}
	p, ok, err := s.remote.FindProfile(ctx, s.principal.UserID)
	if err != nil {
		return types.Profile{}, false, s.fail("profile", LoadFailure, "", err)
	}
	return p, ok, nil
}

// DisplayName is the profile's display name, falling back to the principal's email.
func (s *NoteStore) DisplayName(ctx context.Context) string {
	p, ok, err := s.Profile(ctx)
	if err != nil || !ok || strings.TrimSpace(p.DisplayName) == "" {
		return s.principal.Email
	}
	return p.DisplayName
}
