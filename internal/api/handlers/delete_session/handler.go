package delete_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
)

const (
	msgNotFound = "сессия не найдена"
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

// Handle DELETE /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	deleted, err := h.service.DeleteSession(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("DELETE /sessions/{id} - Failed to delete session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	if !deleted {
		h.logger.Warn("DELETE /sessions/{id} - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("DELETE /sessions/{id} - Session deleted successfully: session_id=%s", sessionID)
	handlers.RespondNoContent(w)
}
