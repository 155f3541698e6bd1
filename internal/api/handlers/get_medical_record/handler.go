package get_medical_record

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/medical"
)

const (
	msgNotFound = "анкета не найдена"
)

type Handler struct {
	service MedicalService
	logger  Logger
}

func NewHandler(service MedicalService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/medical-records/{recordId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recordID := mux.Vars(r)["recordId"]

	record, err := h.service.GetByID(r.Context(), recordID)
	if err != nil {
		switch {
		case errors.Is(err, medical.ErrRecordNotFound):
			h.logger.Warn("GET /medical-records/{id} - Record not found: record_id=%s", recordID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /medical-records/{id} - Failed to get record: record_id=%s, error=%v", recordID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /medical-records/{id} - Record retrieved successfully: record_id=%s", recordID)
	handlers.RespondJSON(w, http.StatusOK, record)
}
