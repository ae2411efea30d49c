package reservation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reservehq/concierge/internal/model/reservation"
	reservationService "github.com/reservehq/concierge/internal/service/reservation"
	"github.com/reservehq/concierge/pkg/utils"
)

// Handler exposes the reservation conversation over HTTP.
type Handler struct {
	svc *reservationService.Service
}

// New creates the reservation handler.
func New(svc *reservationService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the reservation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session/start", h.handleStartSession)
	r.Post("/session/{sessionID}/input", h.handleInput)
	r.Get("/session/{sessionID}", h.handleGetSession)
}

type turnResponse struct {
	Session       reservation.View `json:"session"`
	AgentResponse string           `json:"agent_response"`
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	sess, greeting, err := h.svc.StartSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, turnResponse{
		Session:       sess.View(),
		AgentResponse: greeting,
	})
}

func (h *Handler) handleInput(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Input string `json:"input"`
		Field string `json:"field"`
	}
	// An absent body is the same as an empty utterance.
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, response, err := h.svc.HandleInput(r.Context(), sessionID, payload.Input, payload.Field)
	if err != nil {
		if errors.Is(err, reservationService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to process input")
		return
	}

	utils.RespondJSON(w, http.StatusOK, turnResponse{
		Session:       sess.View(),
		AgentResponse: response,
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.svc.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, reservationService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, sess.View())
}
