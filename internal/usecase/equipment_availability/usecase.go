package equipment_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// UseCase проверка доступности оборудования по окнам сессии
type UseCase struct {
	sessionRepo SessionRepository
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс студии, в котором трактуются дата и время
func NewUseCase(sessionRepo SessionRepository, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		sessionRepo: sessionRepo,
		location:    location,
		logger:      logger,
	}
}

// IsAvailable проверяет, свободно ли окно оборудования для сессии в указанное время
// Окно сравнивается с окнами того же типа у всех неотменённых сессий этой даты
//
// Пример: окно [0,15) сессии 10:00 занимает 10:00-10:15, окно [0,15) сессии 10:05
// занимает 10:05-10:20 - пересечение, laser для второй недоступен.
// Окно [45,60) сессии 10:05 (10:50-11:05) при этом свободно
func (uc *UseCase) IsAvailable(ctx context.Context, req *AvailabilityRequest) (*AvailabilityResponse, error) {
	uc.logger.Info("IsAvailable: equipment=%s, date=%s, time=%s, slot=[%d,%d), exclude=%s",
		req.Equipment, req.Date, req.StartTime, req.StartMinute, req.EndMinute, req.ExcludeSessionID)

	// 1. Валидация входных данных
	equipment, slot, err := validateAvailabilityRequest(req)
	if err != nil {
		uc.logger.Warn("IsAvailable: validation failed: %v", err)
		return nil, err
	}

	date, startTime, err := parseSchedule(req.Date, req.StartTime, uc.location)
	if err != nil {
		uc.logger.Warn("IsAvailable: validation failed: %v", err)
		return nil, err
	}

	// 2. Сессии на эту дату
	sessions, err := uc.sessionsOn(ctx, "IsAvailable", date)
	if err != nil {
		return nil, err
	}

	// 3. Проверка пересечений
	ok, err := domain.CheckEquipmentAvailable(equipment, date, startTime, slot, sessions, req.ExcludeSessionID)
	if err != nil {
		uc.logger.Warn("IsAvailable: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("IsAvailable: equipment=%s slot=%s on %s %s available=%t",
		equipment, slot, req.Date, req.StartTime, ok)

	return &AvailabilityResponse{
		Equipment:   string(equipment),
		Date:        req.Date,
		StartTime:   startTime.String(),
		StartMinute: slot.StartMinute,
		EndMinute:   slot.EndMinute,
		Available:   ok,
	}, nil
}

// OfferableSlots возвращает для каждого типа оборудования канонические окна,
// которые помещаются в длительность сессии и не заняты другими сессиями
func (uc *UseCase) OfferableSlots(ctx context.Context, req *OfferableRequest) (*OfferableResponse, error) {
	uc.logger.Info("OfferableSlots: date=%s, time=%s, duration=%d, exclude=%s",
		req.Date, req.StartTime, req.DurationMinutes, req.ExcludeSessionID)

	if err := validateOfferableRequest(req); err != nil {
		uc.logger.Warn("OfferableSlots: validation failed: %v", err)
		return nil, err
	}

	date, startTime, err := parseSchedule(req.Date, req.StartTime, uc.location)
	if err != nil {
		uc.logger.Warn("OfferableSlots: validation failed: %v", err)
		return nil, err
	}

	sessions, err := uc.sessionsOn(ctx, "OfferableSlots", date)
	if err != nil {
		return nil, err
	}

	result := make([]EquipmentSlots, 0, len(domain.EquipmentTypes))
	for _, equipment := range domain.EquipmentTypes {
		free, err := domain.OfferableSlots(equipment, date, startTime, req.DurationMinutes, sessions, req.ExcludeSessionID)
		if err != nil {
			uc.logger.Warn("OfferableSlots: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		slots := make([]Slot, 0, len(free))
		for _, s := range free {
			slots = append(slots, Slot{StartMinute: s.StartMinute, EndMinute: s.EndMinute})
		}
		result = append(result, EquipmentSlots{Equipment: string(equipment), Slots: slots})
	}

	uc.logger.Info("OfferableSlots: computed slots for %d equipment types on %s %s",
		len(result), req.Date, req.StartTime)

	return &OfferableResponse{
		Date:            req.Date,
		StartTime:       startTime.String(),
		DurationMinutes: req.DurationMinutes,
		Equipment:       result,
	}, nil
}

// sessionsOn загружает сессии даты и переводит их даты в часовой пояс студии
func (uc *UseCase) sessionsOn(ctx context.Context, op string, date time.Time) ([]*domain.Session, error) {
	sessions, err := uc.sessionRepo.ListByDate(ctx, date)
	if err != nil {
		uc.logger.Error("%s: failed to list sessions on %s: %v", op, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list sessions: %v", ErrInternal, err)
	}

	for _, s := range sessions {
		y, m, d := s.Date.Date()
		s.Date = time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	}
	return sessions, nil
}
