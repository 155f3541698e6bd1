package create_medical_record

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/medical"
	"github.com/m04kA/SMC-StudioService/internal/service/medical/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "participantId, sessionId и payload (JSON) обязательны"
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

// Handle POST /api/v1/medical-records
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRecordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /medical-records - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /medical-records - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	record, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, medical.ErrInvalidInput):
			h.logger.Warn("POST /medical-records - Invalid record: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /medical-records - Failed to create record: participant_id=%s, error=%v",
				req.ParticipantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /medical-records - Record created successfully: record_id=%s, participant_id=%s",
		record.ID, record.ParticipantID)
	handlers.RespondJSON(w, http.StatusCreated, record)
}
