package model

import "time"

type Challenge struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:120;not null" json:"name"`
	Slug       string    `gorm:"size:140;uniqueIndex;not null" json:"slug"`
	Difficulty int       `gorm:"not null;index" json:"difficulty"`
	League     string    `gorm:"size:64;not null" json:"league"`
	CreatedAt  time.Time `json:"created_at"`
}
