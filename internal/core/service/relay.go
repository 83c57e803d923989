package service

import (
	"encoding/json"

	"github.com/huddle-rtc/huddle/internal/core/domain"
	"github.com/huddle-rtc/huddle/internal/core/port"
	"github.com/huddle-rtc/huddle/internal/metrics"
	"github.com/rs/zerolog/log"
)

// RelayService fans signaling payloads out to a room's members. It is a
// dumb pipe: payloads are never inspected, and delivery failures stay
// isolated to the member whose channel broke.
type RelayService struct {
	registry port.ConnectionRegistry
}

func NewRelayService(registry port.ConnectionRegistry) *RelayService {
	return &RelayService{registry: registry}
}

// Join binds the client to the room for its remaining lifetime.
func (s *RelayService) Join(roomID string, c port.Client) {
	s.registry.Register(roomID, c)
}

// Relay delivers payload to every member of the room except the sender.
// Each delivery is independent: a broken member is closed and skipped,
// never aborting the loop for the rest.
func (s *RelayService) Relay(roomID string, sender port.Client, payload []byte) {
	s.broadcast(roomID, sender, payload)
	metrics.SignalsRelayed.Inc()
}

// Disconnect removes the client from the room, then notifies the remaining
// members. The notification is tied to the removal actually happening, so
// however many observers report the same failure, the departure is
// broadcast once. With nobody left it is a no-op, not an error.
func (s *RelayService) Disconnect(roomID string, c port.Client) {
	if !s.registry.Unregister(roomID, c) {
		return
	}

	payload, err := json.Marshal(domain.UserLeftEvent())
	if err != nil {
		return
	}
	s.broadcast(roomID, c, payload)
}

func (s *RelayService) broadcast(roomID string, sender port.Client, payload []byte) {
	for _, member := range s.registry.Members(roomID) {
		if member == sender {
			continue
		}
		if err := member.Send(payload); err != nil {
			log.Warn().
				Err(err).
				Str("room_id", roomID).
				Str("client_id", member.ID()).
				Msg("dropping broken member during broadcast")
			metrics.SignalsDropped.Inc()
			member.Close()
			s.registry.Unregister(roomID, member)
		}
	}
}
