package equipment_availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// parseSchedule проверяет дату и время начала сессии
func parseSchedule(rawDate, rawStart string, loc *time.Location) (time.Time, types.TimeString, error) {
	date, err := domain.ParseDate(rawDate, loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	startTime, err := types.NewTimeStringFromString(rawStart)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	return date, startTime, nil
}

// validateAvailabilityRequest валидирует запрос проверки окна
func validateAvailabilityRequest(req *AvailabilityRequest) (domain.EquipmentType, domain.EquipmentSlot, error) {
	equipment, err := domain.ParseEquipmentType(req.Equipment)
	if err != nil {
		return "", domain.EquipmentSlot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slot := domain.EquipmentSlot{StartMinute: req.StartMinute, EndMinute: req.EndMinute}
	if err := domain.ValidateSlot(slot); err != nil {
		if errors.Is(err, domain.ErrInvalidSlot) {
			return "", domain.EquipmentSlot{}, fmt.Errorf("%w: %s", ErrInvalidSlot, slot)
		}
		return "", domain.EquipmentSlot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return equipment, slot, nil
}

// validateOfferableRequest валидирует запрос свободных окон
func validateOfferableRequest(req *OfferableRequest) error {
	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}
