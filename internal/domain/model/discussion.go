package model

import "time"

type Discussion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Comments  []Comment `json:"-"`
}

type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	AuthorID     uint      `gorm:"not null;index" json:"author_id"`
	Author       User      `gorm:"foreignKey:AuthorID" json:"-"`
	DiscussionID uint      `gorm:"not null;index" json:"discussion_id"`
	ParentID     *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	CreatedAt    time.Time `json:"created_at"`
}

type AuthorRef struct {
	Username string `json:"username"`
}

// DiscussionSummary is the denormalised row served by the recent-discussions listing.
type DiscussionSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Author       AuthorRef `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int64     `json:"comment_count"`
}

type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	ParentID  *uint     `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}

type DiscussionDetail struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Author    AuthorRef     `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
	Comments  []CommentView `json:"comments"`
}
