package check_equipment_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	equipmentAvailability "github.com/m04kA/SMC-StudioService/internal/usecase/equipment_availability"
)

const (
	msgInvalidMinutes = "startMinute и endMinute обязательны и должны быть числами"
	msgInvalidSlot    = "окно оборудования должно быть одним из [0,15), [15,30), [30,45), [45,60)"
	msgInvalidInput   = "некорректный тип оборудования, дата (YYYY-MM-DD) или время (HH:MM)"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentType}/availability
// Query params: date, startTime, startMinute, endMinute (обязательные), excludeSessionId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipment := mux.Vars(r)["equipmentType"]

	useCaseReq, err := ToUseCaseRequest(equipment, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /equipment/{type}/availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMinutes)
		return
	}

	result, err := h.useCase.IsAvailable(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, equipmentAvailability.ErrInvalidSlot):
			h.logger.Warn("GET /equipment/{type}/availability - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, equipmentAvailability.ErrInvalidInput):
			h.logger.Warn("GET /equipment/{type}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /equipment/{type}/availability - Failed to check availability: equipment=%s, error=%v",
				equipment, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment/{type}/availability - Checked: equipment=%s, date=%s, available=%t",
		equipment, result.Date, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
