package model

import "time"

type ProfileRun struct {
	ID          uint      `json:"id"`
	Challenge   string    `json:"challenge"`
	Status      RunStatus `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ProfileDiscussion struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Profile struct {
	Username    string              `json:"username"`
	Bio         *string             `json:"bio"`
	Telegram    *string             `json:"telegram"`
	Discord     *string             `json:"discord"`
	Avatar      *string             `json:"avatar"`
	Runs        []ProfileRun        `json:"runs"`
	Discussions []ProfileDiscussion `json:"discussions"`
}
