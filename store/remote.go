package store

import (
	"context"
	"time"

	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Remote is the persistence service behind a NoteStore. Every query is scoped to an
// owner; implementations must never return or touch another owner's rows.
type Remote interface {
	// ListNotes returns the owner's notes, most recently updated first.
	ListNotes(ctx context.Context, ownerID string) ([]types.Note, error)

	// InsertNote stores n, filling in ID, CreatedAt and UpdatedAt.
	InsertNote(ctx context.Context, n *types.Note) error

	// UpdateNote rewrites title and content and reports how many rows matched.
	UpdateNote(ctx context.Context, id, ownerID, title, content string) (int64, error)

	// DeleteNote removes the note and reports how many rows matched.
	DeleteNote(ctx context.Context, id, ownerID string) (int64, error)

	// FindProfile returns the owner's profile. ok is false when none exists.
	FindProfile(ctx context.Context, ownerID string) (p types.Profile, ok bool, err error)
}

type GormRemote struct {
	db *gorm.DB
}

func NewGormRemote(db *gorm.DB) *GormRemote {
	return &GormRemote{db: db}
}

func (r *GormRemote) ListNotes(ctx context.Context, ownerID string) ([]types.Note, error) {
	ret := []types.Note{}
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Order("created_at DESC").
		Order("id").
		Find(&ret)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "Looking for notes owned by %q", ownerID)
	}
	return ret, nil
}

func (r *GormRemote) InsertNote(ctx context.Context, n *types.Note) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return errors.Wrap(err, "Inserting note")
	}
	return nil
}

// UpdateNote always moves updated_at forward, even when the clock has not advanced
// past the stored value.
func (r *GormRemote) UpdateNote(ctx context.Context, id, ownerID, title, content string) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current types.Note
		err := tx.Where("id = ? AND owner_id = ?", id, ownerID).Take(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		now := types.Timestamp(tx)
		if !now.After(current.UpdatedAt) {
			now = current.UpdatedAt.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
		}

		result := tx.Model(&types.Note{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(map[string]any{
				"title":      title,
				"content":    content,
				"updated_at": now,
			})
		rows = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, errors.Wrapf(err, "Updating note %q", id)
	}
	return rows, nil
}

func (r *GormRemote) DeleteNote(ctx context.Context, id, ownerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&types.Note{})
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "Deleting note %q", id)
	}
	return result.RowsAffected, nil
}

func (r *GormRemote) FindProfile(ctx context.Context, ownerID string) (types.Profile, bool, error) {
	var p types.Profile
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Profile{}, false, nil
	}
	if err != nil {
		return types.Profile{}, false, errors.Wrapf(err, "Looking for profile of %q", ownerID)
	}
	return p, true, nil
}
