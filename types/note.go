package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string    `gorm:"index;size:36;not null" json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index" json:"updated_at"`
}

// Timestamp reads the database clock in UTC at the precision every supported driver
// stores. sqlite keeps times as text, so a mix of offsets would not sort.
func Timestamp(tx *gorm.DB) time.Time {
	return tx.NowFunc().UTC().Truncate(time.Microsecond)
}

// BeforeCreate assigns the note id and timestamps. Callers never choose the id.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	now := Timestamp(tx)
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = now
	}
	return nil
}
