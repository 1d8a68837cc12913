package service

import "context"

// Notifier pushes a live event to every subscriber of a room. Delivery is
// best-effort and must not block the caller.
type Notifier interface {
	Notify(ctx context.Context, room, event string, payload interface{})
}

// RunAnnouncer publishes approved runs to an external channel.
type RunAnnouncer interface {
	RunApproved(username, challenge, videoURL string)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string, interface{}) {}
