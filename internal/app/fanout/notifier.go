package fanout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const publishTimeout = 2 * time.Second

// LocalNotifier delivers straight into this process's hub.
type LocalNotifier struct {
	hub *Hub
}

func NewLocalNotifier(hub *Hub) *LocalNotifier {
	return &LocalNotifier{hub: hub}
}

func (n *LocalNotifier) Notify(_ context.Context, room, event string, payload interface{}) {
	frame, err := NewFrame(event, payload)
	if err != nil {
		logrus.WithError(err).Warn("fanout: dropping event")
		return
	}
	delivered := n.hub.Deliver(room, frame)
	logrus.WithFields(logrus.Fields{"room": room, "event": event, "delivered": delivered}).Debug("fanout: delivered")
}

// RedisNotifier publishes envelopes so every instance's relay can deliver
// them to its own subscribers.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

// Notify returns immediately; the publish runs detached from the request.
func (n *RedisNotifier) Notify(_ context.Context, room, event string, payload interface{}) {
	frame, err := NewFrame(event, payload)
	if err != nil {
		logrus.WithError(err).Warn("fanout: dropping event")
		return
	}
	body, err := json.Marshal(Envelope{Room: room, Frame: frame})
	if err != nil {
		logrus.WithError(err).Warn("fanout: dropping event")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := n.rdb.Publish(ctx, n.channel, body).Err(); err != nil {
			logrus.WithFields(logrus.Fields{"room": room, "event": event}).WithError(err).Warn("fanout: publish failed")
		}
	}()
}
