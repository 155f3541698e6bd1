package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParticipant = "некорректные данные участника"
	msgNotFound           = "сессия не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/bookings
// Запись или лист ожидания - 201, отказ по правилам сессии - 200 с success=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.ParticipantRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /sessions/{id}/bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParticipant)
		return
	}

	result, err := h.service.BookSession(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/bookings - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/bookings - Invalid participant: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidParticipant)

		default:
			h.logger.Error("POST /sessions/{id}/bookings - Failed to book session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Success {
		h.logger.Warn("POST /sessions/{id}/bookings - Booking rejected: session_id=%s, reason=%s", sessionID, result.Reason)
		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	h.logger.Info("POST /sessions/{id}/bookings - Booking created successfully: session_id=%s, waitlisted=%t",
		sessionID, result.IsWaitlisted)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
