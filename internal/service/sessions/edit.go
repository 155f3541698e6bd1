package sessions

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/integrations/events"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// UpdateSession частично обновляет сессию и заново проверяет все инварианты
//
// - уменьшение мест ниже числа участников → ErrCapacityViolation
// - уменьшение или отключение непустого листа ожидания → ErrWaitlistViolation
// - увеличение мест продвигает лист ожидания (FIFO)
// - смена даты, времени или длительности перепроверяет окна оборудования:
//   недоступные снимаются и возвращаются в DroppedSlots
// - явно переданные окна оборудования сохраняются, только если свободны, иначе ErrEquipmentConflict
func (s *Service) UpdateSession(ctx context.Context, id string, req *models.UpdateSessionRequest) (*models.EditResult, error) {
	s.logger.Info("UpdateSession: session id=%s", id)

	unlock, err := s.lock(ctx, sessionKey(id))
	if err != nil {
		s.logger.Error("UpdateSession: %v", err)
		return nil, err
	}
	defer unlock()

	// Дата не может измениться, пока удерживается ключ сессии
	current, err := s.getSession(ctx, "UpdateSession", id)
	if err != nil {
		return nil, err
	}

	keys := []string{scheduleKey(current.Date)}
	if req.Date != nil {
		newDate, err := domain.ParseDate(*req.Date, s.cfg.Location)
		if err != nil {
			s.logger.Warn("UpdateSession: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		keys = append(keys, scheduleKey(newDate))
	}

	unlockSchedule, err := s.lock(ctx, keys...)
	if err != nil {
		s.logger.Error("UpdateSession: %v", err)
		return nil, err
	}
	defer unlockSchedule()

	var updated *domain.Session
	var before domain.SessionStatus
	var dropped []domain.DroppedSlot
	var promoted []domain.Participant
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		updated, dropped, promoted = nil, nil, nil

		session, err := s.getSession(txCtx, "UpdateSession", id)
		if err != nil {
			return err
		}
		before = session.Status

		next, err := s.applyUpdate(session, req)
		if err != nil {
			s.logger.Warn("UpdateSession: session id=%s: %v", id, err)
			return err
		}

		promoted = next.PromoteFromWaitlist()
		if req.Status == nil {
			switch {
			case !next.HasFreeSpot() && next.Status == domain.StatusOpen:
				next.Status = domain.StatusClosed
			case next.HasFreeSpot() && next.Status == domain.StatusClosed:
				next.Status = domain.StatusOpen
			}
		}

		sameDay, err := s.listByDate(txCtx, "UpdateSession", next.Date)
		if err != nil {
			return err
		}

		if req.EquipmentBookings != nil {
			if err := s.checkEquipment(next, sameDay); err != nil {
				s.logger.Warn("UpdateSession: session id=%s: %v", id, err)
				return err
			}
		} else if scheduleChanged(session, next) {
			dropped = revalidateEquipment(next, sameDay)
		}

		if err := next.Validate(); err != nil {
			s.logger.Warn("UpdateSession: session id=%s: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if scheduleChanged(session, next) || next.Room != session.Room {
			if err := s.checkRoom(next, sameDay); err != nil {
				s.logger.Warn("UpdateSession: session id=%s: %v", id, err)
				return err
			}
		}

		next.UpdatedAt = s.now()
		if err := s.update(txCtx, "UpdateSession", next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range promoted {
		s.publisher.ParticipantChanged(events.SubjectWaitlistPromoted, id, p)
	}
	if len(dropped) > 0 {
		s.publisher.SlotsDropped(id, dropped)
		s.logger.Warn("UpdateSession: session id=%s dropped %d equipment slots", id, len(dropped))
	}
	if before != updated.Status {
		s.publisher.StatusChanged(id, before, updated.Status)
	}

	s.logger.Info("UpdateSession: successfully updated session id=%s", id)
	return &models.EditResult{
		Session:      models.FromDomainSession(updated, s.now()),
		DroppedSlots: models.FromDomainDroppedSlots(dropped),
	}, nil
}

// applyUpdate применяет переданные поля к копии сессии
func (s *Service) applyUpdate(session *domain.Session, req *models.UpdateSessionRequest) (*domain.Session, error) {
	next := session.Clone()

	if req.Name != nil {
		next.Name = strings.TrimSpace(*req.Name)
	}
	if req.Trainer != nil {
		next.Trainer = strings.TrimSpace(*req.Trainer)
	}
	if req.Room != nil {
		next.Room = strings.TrimSpace(*req.Room)
	}
	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date, s.cfg.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		next.Date = date
	}
	if req.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		next.StartTime = startTime
	}
	if req.DurationMinutes != nil {
		next.DurationMinutes = *req.DurationMinutes
	}
	if req.EnableWaitlist != nil {
		next.EnableWaitlist = *req.EnableWaitlist
	}
	if req.MaxWaitlist != nil {
		next.MaxWaitlist = *req.MaxWaitlist
	}
	if req.Status != nil {
		status, err := domain.ParseSessionStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if session.Status.IsTerminal() && status != session.Status {
			return nil, fmt.Errorf("%w: session is %s", ErrStatusTransition, session.Status)
		}
		next.Status = status
	}
	if req.EquipmentBookings != nil {
		equipment, err := models.ToDomainEquipment(*req.EquipmentBookings)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		next.EquipmentBookings = equipment
	}

	if req.MaxSpots != nil {
		if *req.MaxSpots < len(session.Participants) {
			return nil, fmt.Errorf("%w: maxSpots=%d, participants=%d",
				ErrCapacityViolation, *req.MaxSpots, len(session.Participants))
		}
		next.MaxSpots = *req.MaxSpots
	}

	// Лист ожидания сравнивается с учётом тех, кого продвинут новые места
	remaining := len(next.Waitlist) - (next.MaxSpots - len(next.Participants))
	if !next.EnableWaitlist && remaining > 0 {
		return nil, fmt.Errorf("%w: cannot disable waitlist with %d entries", ErrWaitlistViolation, remaining)
	}
	if remaining > next.MaxWaitlist {
		return nil, fmt.Errorf("%w: maxWaitlist=%d, waitlisted=%d", ErrWaitlistViolation, next.MaxWaitlist, remaining)
	}

	return next, nil
}

// revalidateEquipment снимает окна, которые не помещаются в новую длительность
// или заняты другими сессиями в новое время
func revalidateEquipment(session *domain.Session, sameDay []*domain.Session) []domain.DroppedSlot {
	var dropped []domain.DroppedSlot
	kept := make(domain.EquipmentBookings, len(session.EquipmentBookings))

	for _, t := range session.EquipmentBookings.Types() {
		for _, slot := range session.EquipmentBookings[t] {
			if !slot.FitsDuration(session.DurationMinutes) {
				dropped = append(dropped, domain.DroppedSlot{Equipment: t, Slot: slot, Reason: domain.DropReasonExceedsDuration})
				continue
			}

			ok, err := domain.CheckEquipmentAvailable(t, session.Date, session.StartTime, slot, sameDay, session.ID)
			if err != nil || !ok {
				dropped = append(dropped, domain.DroppedSlot{Equipment: t, Slot: slot, Reason: domain.DropReasonUnavailable})
				continue
			}

			kept[t] = append(kept[t], slot)
		}
	}

	session.EquipmentBookings = kept
	return dropped
}

// scheduleChanged возвращает true, если сдвинулось абсолютное время сессии
func scheduleChanged(before, after *domain.Session) bool {
	return !domain.SameDate(before.Date, after.Date) ||
		before.StartTime != after.StartTime ||
		before.DurationMinutes != after.DurationMinutes
}
