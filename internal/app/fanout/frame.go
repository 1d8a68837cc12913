// Package fanout delivers best-effort live events to websocket subscribers
// grouped into rooms. Nothing is persisted or acknowledged: a subscriber that
// is not connected, or whose buffer is full, misses the event.
package fanout

import (
	"encoding/json"
	"fmt"
)

const (
	EventConnectionStatus = "connection_status"
	EventRunApproved      = "run_approved"
	EventNewComment       = "new_comment"
	EventJoinDiscussion   = "join_discussion"
	EventLeaveDiscussion  = "leave_discussion"
	EventJoinedDiscussion = "joined_discussion"
	EventError            = "error"
)

// Frame is the JSON unit written to and read from a socket.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Envelope is a Frame addressed to a room; it is what crosses redis.
type Envelope struct {
	Room  string `json:"room"`
	Frame Frame  `json:"frame"`
}

func NewFrame(event string, payload interface{}) (Frame, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	return Frame{Event: event, Data: data}, nil
}

func UserRoom(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

func DiscussionRoom(discussionID uint) string {
	return fmt.Sprintf("discussion_%d", discussionID)
}
