package model

// Payloads pushed over the live channel.

type RunApprovedEvent struct {
	UserID    uint   `json:"user_id"`
	RunID     uint   `json:"run_id"`
	Challenge string `json:"challenge"`
}

type NewCommentEvent struct {
	DiscussionID uint   `json:"discussion_id"`
	CommentID    uint   `json:"comment_id"`
	Author       string `json:"author"`
	Content      string `json:"content"`
}
