package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"

	equipmentAvailability "github.com/m04kA/SMC-StudioService/internal/usecase/equipment_availability"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string                     `json:"date"`
	StartTime       string                     `json:"startTime"`
	DurationMinutes int                        `json:"durationMinutes"`
	Equipment       map[string][]AvailableSlot `json:"equipment"`
}

// AvailableSlot свободное окно оборудования
type AvailableSlot struct {
	StartMinute int `json:"startMinute"`
	EndMinute   int `json:"endMinute"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(query url.Values) (*equipmentAvailability.OfferableRequest, error) {
	duration, err := strconv.Atoi(query.Get("durationMinutes"))
	if err != nil {
		return nil, fmt.Errorf("durationMinutes: %w", err)
	}

	return &equipmentAvailability.OfferableRequest{
		Date:             query.Get("date"),
		StartTime:        query.Get("startTime"),
		DurationMinutes:  duration,
		ExcludeSessionID: query.Get("excludeSessionId"),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *equipmentAvailability.OfferableResponse) *AvailableSlotsResponse {
	equipment := make(map[string][]AvailableSlot, len(resp.Equipment))
	for _, e := range resp.Equipment {
		slots := make([]AvailableSlot, len(e.Slots))
		for i, slot := range e.Slots {
			slots[i] = AvailableSlot{StartMinute: slot.StartMinute, EndMinute: slot.EndMinute}
		}
		equipment[e.Equipment] = slots
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date,
		StartTime:       resp.StartTime,
		DurationMinutes: resp.DurationMinutes,
		Equipment:       equipment,
	}
}
