package get_customer_medical_records

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/medical"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
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

// Handle GET /api/v1/customers/{customerId}/medical-records
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]

	records, err := h.service.GetByCustomerID(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, medical.ErrInvalidInput):
			h.logger.Warn("GET /customers/{id}/medical-records - Invalid customer ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCustomerID)

		default:
			h.logger.Error("GET /customers/{id}/medical-records - Failed to get records: customer_id=%s, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/medical-records - Records retrieved successfully: customer_id=%s, count=%d",
		customerID, len(records))
	handlers.RespondJSON(w, http.StatusOK, records)
}
