package check_equipment_availability

import (
	"context"

	equipmentAvailability "github.com/m04kA/SMC-StudioService/internal/usecase/equipment_availability"
)

type AvailabilityUseCase interface {
	IsAvailable(ctx context.Context, req *equipmentAvailability.AvailabilityRequest) (*equipmentAvailability.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
