package handler

import (
	"net/http"

	"runboard/internal/app/fanout"
	"runboard/internal/common/security"
	"runboard/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type connectionStatus struct {
	Status        string `json:"status"`
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// SocketHandler upgrades live-channel connections and attaches them to the hub.
type SocketHandler struct {
	hub      *fanout.Hub
	tokens   *security.TokenIssuer
	userRepo repository.UserRepository
	upgrader websocket.Upgrader
}

func NewSocketHandler(hub *fanout.Hub, tokens *security.TokenIssuer, userRepo repository.UserRepository) *SocketHandler {
	return &SocketHandler{
		hub:      hub,
		tokens:   tokens,
		userRepo: userRepo,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers connect from the site origin; CORS for the socket is open.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *SocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.serveSocket)
}

func (h *SocketHandler) serveSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Debug("socket upgrade failed")
		return
	}

	sub := h.hub.Subscribe()
	status := connectionStatus{Status: "connected"}

	// A missing or invalid token still gets an anonymous connection.
	if tokenString := socketToken(r); tokenString != "" {
		username, err := h.tokens.ParseUsername(tokenString, security.TokenTypeAccess)
		if err == nil {
			if user, err := h.userRepo.FindByUsername(r.Context(), username); err == nil {
				h.hub.Join(sub, fanout.UserRoom(user.ID))
				status.Authenticated = true
				status.Username = user.Username
			}
		}
	}

	if frame, err := fanout.NewFrame(fanout.EventConnectionStatus, status); err == nil {
		h.hub.Send(sub, frame)
	}

	logrus.WithFields(logrus.Fields{
		"subscriber":    sub.ID,
		"authenticated": status.Authenticated,
	}).Debug("socket connected")
	fanout.Serve(h.hub, conn, sub)
}

// socketToken reads the bearer token, falling back to ?jwt= for browsers
// that cannot set headers on a websocket handshake.
func socketToken(r *http.Request) string {
	if token := jwtauth.TokenFromHeader(r); token != "" {
		return token
	}
	return jwtauth.TokenFromQuery(r)
}
