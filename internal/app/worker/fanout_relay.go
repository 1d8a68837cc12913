package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"runboard/internal/app/fanout"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// FanoutRelay subscribes to the shared redis channel and hands every envelope
// to this instance's hub.
type FanoutRelay struct {
	rdb     *redis.Client
	channel string
	hub     *fanout.Hub
}

func NewFanoutRelay(rdb *redis.Client, channel string, hub *fanout.Hub) *FanoutRelay {
	return &FanoutRelay{rdb: rdb, channel: channel, hub: hub}
}

func (w *FanoutRelay) Start(ctx context.Context) {
	sub := w.rdb.Subscribe(ctx, w.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before reporting ready.
	if _, err := sub.Receive(ctx); err != nil {
		logrus.WithError(err).WithField("channel", w.channel).Error("Fanout relay could not subscribe")
		return
	}
	logrus.WithField("channel", w.channel).Info("Fanout relay started")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Fanout relay stopping...")
			return
		case msg, ok := <-messages:
			if !ok {
				logrus.Warn("Fanout relay channel closed")
				return
			}
			if _, err := w.dispatch(msg.Payload); err != nil {
				logrus.WithError(err).Warn("Fanout relay dropped a message")
			}
		}
	}
}

func (w *FanoutRelay) dispatch(payload string) (int, error) {
	var env fanout.Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return 0, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Room == "" || env.Frame.Event == "" {
		return 0, fmt.Errorf("envelope missing room or event")
	}
	return w.hub.Deliver(env.Room, env.Frame), nil
}
