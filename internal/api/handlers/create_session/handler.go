package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные сессии"
	msgEquipmentConflict  = "оборудование уже занято в выбранное время"
	msgRoomConflict       = "зал уже занят в выбранное время"
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

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /sessions - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	session, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid session data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, sessions.ErrEquipmentConflict):
			h.logger.Warn("POST /sessions - Equipment conflict: %v", err)
			handlers.RespondConflict(w, msgEquipmentConflict)

		case errors.Is(err, sessions.ErrRoomConflict):
			h.logger.Warn("POST /sessions - Room conflict: %v", err)
			handlers.RespondConflict(w, msgRoomConflict)

		default:
			h.logger.Error("POST /sessions - Failed to create session: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created successfully: session_id=%s", session.ID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
