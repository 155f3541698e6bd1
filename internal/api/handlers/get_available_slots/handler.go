package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	equipmentAvailability "github.com/m04kA/SMC-StudioService/internal/usecase/equipment_availability"
)

const (
	msgInvalidDuration = "durationMinutes обязателен и должен быть числом"
	msgInvalidInput    = "некорректная дата (YYYY-MM-DD), время (HH:MM) или длительность"
)

type Handler struct {
	useCase OfferableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase OfferableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/slots
// Query params: date, startTime, durationMinutes (обязательные), excludeSessionId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /equipment/slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.OfferableSlots(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, equipmentAvailability.ErrInvalidInput):
			h.logger.Warn("GET /equipment/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /equipment/slots - Failed to get slots: date=%s, error=%v", useCaseReq.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment/slots - Slots retrieved successfully: date=%s, startTime=%s, duration=%d",
		result.Date, result.StartTime, result.DurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
