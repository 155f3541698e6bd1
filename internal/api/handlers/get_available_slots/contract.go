package get_available_slots

import (
	"context"

	equipmentAvailability "github.com/m04kA/SMC-StudioService/internal/usecase/equipment_availability"
)

type OfferableSlotsUseCase interface {
	OfferableSlots(ctx context.Context, req *equipmentAvailability.OfferableRequest) (*equipmentAvailability.OfferableResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
