package check_equipment_availability

import (
	"fmt"
	"net/url"
	"strconv"

	equipmentAvailability "github.com/m04kA/SMC-StudioService/internal/usecase/equipment_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Equipment   string `json:"equipment"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
	Available   bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из пути и query параметров
func ToUseCaseRequest(equipment string, query url.Values) (*equipmentAvailability.AvailabilityRequest, error) {
	startMinute, err := strconv.Atoi(query.Get("startMinute"))
	if err != nil {
		return nil, fmt.Errorf("startMinute: %w", err)
	}

	endMinute, err := strconv.Atoi(query.Get("endMinute"))
	if err != nil {
		return nil, fmt.Errorf("endMinute: %w", err)
	}

	return &equipmentAvailability.AvailabilityRequest{
		Equipment:        equipment,
		Date:             query.Get("date"),
		StartTime:        query.Get("startTime"),
		StartMinute:      startMinute,
		EndMinute:        endMinute,
		ExcludeSessionID: query.Get("excludeSessionId"),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *equipmentAvailability.AvailabilityResponse) *AvailabilityResponse {
	return &AvailabilityResponse{
		Equipment:   resp.Equipment,
		Date:        resp.Date,
		StartTime:   resp.StartTime,
		StartMinute: resp.StartMinute,
		EndMinute:   resp.EndMinute,
		Available:   resp.Available,
	}
}
