package update_session

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
	msgInvalidData        = "некорректные данные сессии"
	msgNotFound           = "сессия не найдена"
	msgCapacityViolation  = "количество мест меньше числа записанных участников"
	msgWaitlistViolation  = "лист ожидания нельзя уменьшить или отключить, пока в нём есть участники"
	msgEquipmentConflict  = "оборудование уже занято в выбранное время"
	msgRoomConflict       = "зал уже занят в выбранное время"
	msgStatusTransition   = "отменённую сессию нельзя вернуть в другой статус"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}
// Перенос drag-and-drop передаёт только room, date и startTime
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.UpdateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("PATCH /sessions/{id} - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.service.UpdateSession(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id} - Invalid session data: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, sessions.ErrCapacityViolation):
			h.logger.Warn("PATCH /sessions/{id} - Capacity violation: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgCapacityViolation)

		case errors.Is(err, sessions.ErrWaitlistViolation):
			h.logger.Warn("PATCH /sessions/{id} - Waitlist violation: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgWaitlistViolation)

		case errors.Is(err, sessions.ErrEquipmentConflict):
			h.logger.Warn("PATCH /sessions/{id} - Equipment conflict: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgEquipmentConflict)

		case errors.Is(err, sessions.ErrRoomConflict):
			h.logger.Warn("PATCH /sessions/{id} - Room conflict: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgRoomConflict)

		case errors.Is(err, sessions.ErrStatusTransition):
			h.logger.Warn("PATCH /sessions/{id} - Status transition rejected: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgStatusTransition)

		default:
			h.logger.Error("PATCH /sessions/{id} - Failed to update session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id} - Session updated successfully: session_id=%s, dropped_slots=%d",
		sessionID, len(result.DroppedSlots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
