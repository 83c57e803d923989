package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/huddle-rtc/huddle/internal/core/domain"
)

type roomResponse struct {
	RoomID          string    `json:"room_id"`
	Title           string    `json:"title"`
	Password        string    `json:"password,omitempty"`
	InvitationToken string    `json:"invitation_token,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toRoomResponse(room *domain.Room, includeSecrets bool) roomResponse {
	out := roomResponse{
		RoomID:    room.ID,
		Title:     room.Title,
		CreatedAt: room.CreatedAt,
	}
	if includeSecrets {
		out.Password = room.Password
		out.InvitationToken = room.InvitationToken
	}
	return out
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "title is required"})
		return
	}

	room, err := h.rooms.Create(r.Context(), req.Title, currentUser(r).Subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomResponse(room, true))
}

func (h *Handler) joinRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomID   string `json:"room_id"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "room_id is required"})
		return
	}

	user := currentUser(r)
	approval, err := h.rooms.Join(r.Context(), req.RoomID, req.Password, identityOf(user))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("Successfully joined %s", approval.Title),
		"data": map[string]string{
			"room_id":   approval.RoomID,
			"title":     approval.Title,
			"joined_as": user.Email,
		},
	})
}

func (h *Handler) myRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.ListByOwner(r.Context(), currentUser(r).Subject)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResponse(&rooms[i], false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) invitation(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.InvitationDetails(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room, true))
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":    user.Subject,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}
