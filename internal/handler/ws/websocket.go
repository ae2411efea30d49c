// Package ws drives the reservation conversation over a websocket: one
// inbound frame per turn, one outbound frame per agent response.
package ws

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	reservationService "github.com/reservehq/concierge/internal/service/reservation"
	"github.com/reservehq/concierge/pkg/utils"
)

// Handler upgrades turn requests to a websocket connection.
type Handler struct {
	svc      *reservationService.Service
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(svc *reservationService.Service) *Handler {
	return &Handler{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleSocket)
}

type inboundTurn struct {
	Input string `json:"input"`
	Field string `json:"field"`
}

type outboundFrame struct {
	Type          string `json:"type"`
	Session       any    `json:"session,omitempty"`
	AgentResponse string `json:"agent_response,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (h *Handler) handleSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	// Reject unknown sessions before committing to the upgrade.
	sess, err := h.svc.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, reservationService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	if err := conn.WriteJSON(outboundFrame{Type: "session", Session: sess.View()}); err != nil {
		log.Printf("[ws] failed to send initial frame: %v", err)
		return
	}

	for {
		var turn inboundTurn
		if err := conn.ReadJSON(&turn); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] read error for session=%s: %v", sessionID, err)
			}
			return
		}

		next, response, err := h.svc.HandleInput(r.Context(), sessionID, turn.Input, turn.Field)
		if err != nil {
			frame := outboundFrame{Type: "error", Error: "failed to process input"}
			if errors.Is(err, reservationService.ErrSessionNotFound) {
				frame.Error = "Session not found"
			}
			if writeErr := conn.WriteJSON(frame); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(outboundFrame{
			Type:          "turn",
			Session:       next.View(),
			AgentResponse: response,
		}); err != nil {
			log.Printf("[ws] write error for session=%s: %v", sessionID, err)
			return
		}
	}
}
