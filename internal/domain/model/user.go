package model

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string       `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"size:256;not null" json:"-"` // Not exposed
	Role         string       `gorm:"size:20;not null;default:user" json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	Profile      *UserProfile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Runs         []Run        `json:"-"`
	Discussions  []Discussion `gorm:"foreignKey:AuthorID" json:"-"`
}

// UserProfile holds optional public details; unset fields render as null.
type UserProfile struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	UserID    uint    `gorm:"uniqueIndex;not null" json:"-"`
	Bio       *string `gorm:"type:text" json:"bio"`
	Telegram  *string `gorm:"size:64" json:"telegram"`
	Discord   *string `gorm:"size:64" json:"discord"`
	AvatarURL *string `gorm:"size:512" json:"avatar"`
}
