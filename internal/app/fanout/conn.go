package fanout

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type discussionRef struct {
	DiscussionID uint `json:"discussion_id"`
}

// Serve pumps frames between conn and the hub until either side goes away.
// It blocks; the subscriber is unsubscribed and conn closed on return.
func Serve(hub *Hub, conn *websocket.Conn, sub *Subscriber) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		writePump(conn, sub)
	}()

	readPump(hub, conn, sub)
	hub.Unsubscribe(sub)
	<-done
	conn.Close()
}

func readPump(hub *Hub, conn *websocket.Conn, sub *Subscriber) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithField("subscriber", sub.ID).WithError(err).Debug("fanout: read failed")
			}
			return
		}
		handleClientFrame(hub, sub, frame)
	}
}

func handleClientFrame(hub *Hub, sub *Subscriber, frame Frame) {
	switch frame.Event {
	case EventJoinDiscussion, EventLeaveDiscussion:
		var ref discussionRef
		if err := json.Unmarshal(frame.Data, &ref); err != nil || ref.DiscussionID == 0 {
			sendError(hub, sub, "discussion_id is required")
			return
		}
		if frame.Event == EventLeaveDiscussion {
			hub.Leave(sub, DiscussionRoom(ref.DiscussionID))
			return
		}
		hub.Join(sub, DiscussionRoom(ref.DiscussionID))
		if ack, err := NewFrame(EventJoinedDiscussion, ref); err == nil {
			hub.Send(sub, ack)
		}
	default:
		sendError(hub, sub, "unknown event "+frame.Event)
	}
}

func sendError(hub *Hub, sub *Subscriber, msg string) {
	if frame, err := NewFrame(EventError, map[string]string{"msg": msg}); err == nil {
		hub.Send(sub, frame)
	}
}

func writePump(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-sub.Frames():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(frame); err != nil {
				// Unblock the reader so Serve can finish.
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}
