package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	Password  string `json:"-"`
	Role      string
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u User) IsSet() bool {
	return u.Email != ""
}

// Profile holds the public display name of a user. At most one row exists per owner.
type Profile struct {
	OwnerID     string `gorm:"primaryKey;size:36"`
	DisplayName string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}
