package model

import "time"

type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusApproved RunStatus = "approved"
	// RunStatusRejected exists in stored data only; no transition produces it.
	RunStatusRejected RunStatus = "rejected"
)

type Run struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `json:"-"`
	ChallengeID uint       `gorm:"not null;index" json:"challenge_id"`
	Challenge   Challenge  `json:"-"`
	VideoURL    string     `gorm:"size:512;not null" json:"video_url"`
	Description string     `gorm:"type:text" json:"description"`
	Status      RunStatus  `gorm:"size:20;not null;default:pending;index" json:"status"`
	SubmittedAt time.Time  `gorm:"autoCreateTime;index" json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// RunSummary is the denormalised row served by the recent-runs listing.
type RunSummary struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Challenge   string    `json:"challenge"`
	Status      RunStatus `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}
