package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	gws "github.com/huddle-rtc/huddle/internal/adapter/driven/gateway/ws"
	"github.com/huddle-rtc/huddle/internal/core/domain"
	"github.com/huddle-rtc/huddle/internal/core/port"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func identityOf(u *domain.User) port.Identity {
	return port.Identity{
		Subject:    u.Subject,
		Email:      u.Email,
		GivenName:  u.FirstName,
		FamilyName: u.LastName,
	}
}

// serveWS completes the join handshake and runs the signaling read loop.
// The connection's room binding is fixed here for its whole lifetime.
func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if _, err := h.rooms.GetActive(r.Context(), roomID); err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := gws.NewClient(conn)
	l := log.With().
		Str("client_id", client.ID()).
		Str("room_id", roomID).
		Str("user", currentUser(r).Subject).
		Logger()
	l.Info().Msg("participant connected")

	h.relay.Join(roomID, client)
	go client.WritePump()

	// Disconnect cleanup runs exactly once, however the read loop ends.
	defer func() {
		h.relay.Disconnect(roomID, client)
		client.Close()
		l.Info().Msg("participant disconnected")
	}()

	client.ConfigureRead()
	for {
		payload, err := client.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				l.Warn().Err(err).Msg("unexpected close")
			}
			return
		}
		h.relay.Relay(roomID, client, payload)
	}
}
