package sessions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/integrations/events"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

// BookSession записывает участника на сессию
// Есть место - в участники (последнее место закрывает сессию), иначе в лист ожидания.
// Отказы по бизнес-правилам возвращаются как Success=false с причиной, не ошибкой
func (s *Service) BookSession(ctx context.Context, sessionID string, req *models.ParticipantRequest) (*models.BookResult, error) {
	s.logger.Info("BookSession: session id=%s, email=%s", sessionID, req.Email)

	participant, err := s.newParticipant(req)
	if err != nil {
		s.logger.Warn("BookSession: validation failed: %v", err)
		return nil, err
	}

	unlock, err := s.lock(ctx, sessionKey(sessionID))
	if err != nil {
		s.logger.Error("BookSession: %v", err)
		return nil, err
	}
	defer unlock()

	var result *models.BookResult
	var closed bool
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, closed = nil, false

		session, err := s.getSession(txCtx, "BookSession", sessionID)
		if err != nil {
			return err
		}

		now := s.now()
		if status := domain.DeriveStatus(session, now); !status.AcceptsBookings() {
			result = rejected(models.ReasonUnavailable, fmt.Sprintf("Session is %s and does not accept bookings", status))
			return nil
		}

		if session.HasEmail(participant.Email) {
			result = rejected(models.ReasonDuplicate, "This email is already registered for the session")
			return nil
		}

		participant.JoinedAt = now
		switch {
		case session.HasFreeSpot():
			session.Participants = append(session.Participants, participant)
			if !session.HasFreeSpot() && session.Status == domain.StatusOpen {
				session.Status = domain.StatusClosed
				closed = true
			}
			result = &models.BookResult{Success: true, Message: "Booking confirmed"}

		case session.WaitlistHasRoom():
			session.Waitlist = append(session.Waitlist, participant)
			result = &models.BookResult{
				Success:      true,
				IsWaitlisted: true,
				Message:      fmt.Sprintf("Session is full, added to waitlist at position %d", len(session.Waitlist)),
			}

		case !session.EnableWaitlist:
			result = rejected(models.ReasonWaitlistDisabled, "Session is full and the waitlist is disabled")
			return nil

		default:
			result = rejected(models.ReasonWaitlistFull, "Session and waitlist are full")
			return nil
		}

		session.UpdatedAt = now
		return s.update(txCtx, "BookSession", session)
	})
	if err != nil {
		return nil, err
	}

	if !result.Success {
		s.metrics.ObserveBooking(result.Reason)
		s.logger.Warn("BookSession: session id=%s rejected email=%s: %s", sessionID, participant.Email, result.Reason)
		return result, nil
	}

	if result.IsWaitlisted {
		s.metrics.ObserveBooking(models.OutcomeWaitlisted)
		s.publisher.ParticipantChanged(events.SubjectSessionWaitlisted, sessionID, participant)
		s.logger.Info("BookSession: email=%s waitlisted for session id=%s", participant.Email, sessionID)
		return result, nil
	}

	s.metrics.ObserveBooking(models.OutcomeBooked)
	s.publisher.ParticipantChanged(events.SubjectSessionBooked, sessionID, participant)
	if closed {
		s.publisher.StatusChanged(sessionID, domain.StatusOpen, domain.StatusClosed)
	}
	s.logger.Info("BookSession: email=%s booked for session id=%s", participant.Email, sessionID)
	return result, nil
}

// CancelBooking отменяет запись участника
// Освободившееся место получает первый в листе ожидания (FIFO).
// Если место осталось свободным, закрытая сессия снова открывается
func (s *Service) CancelBooking(ctx context.Context, sessionID, email string) (*models.CancelResult, error) {
	s.logger.Info("CancelBooking: session id=%s, email=%s", sessionID, email)

	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	unlock, err := s.lock(ctx, sessionKey(sessionID))
	if err != nil {
		s.logger.Error("CancelBooking: %v", err)
		return nil, err
	}
	defer unlock()

	var result *models.CancelResult
	var removed domain.Participant
	var promoted []domain.Participant
	var reopened bool
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, promoted, reopened = nil, nil, false

		session, err := s.getSession(txCtx, "CancelBooking", sessionID)
		if err != nil {
			return err
		}

		idx := session.ParticipantIndex(email)
		if idx < 0 {
			result = &models.CancelResult{Success: false, Message: "Participant is not booked for this session"}
			return nil
		}

		removed = session.Participants[idx]
		session.Participants = append(session.Participants[:idx:idx], session.Participants[idx+1:]...)
		promoted = session.PromoteFromWaitlist()

		if session.HasFreeSpot() && session.Status == domain.StatusClosed {
			session.Status = domain.StatusOpen
			reopened = true
		}

		result = &models.CancelResult{Success: true, Message: "Booking cancelled"}
		if len(promoted) > 0 {
			result.Promoted = models.FromDomainParticipant(promoted[0])
			result.Message = fmt.Sprintf("Booking cancelled, %s promoted from waitlist", promoted[0].Email)
		}

		session.UpdatedAt = s.now()
		return s.update(txCtx, "CancelBooking", session)
	})
	if err != nil {
		return nil, err
	}

	if !result.Success {
		s.logger.Warn("CancelBooking: email=%s not booked for session id=%s", email, sessionID)
		return result, nil
	}

	s.publisher.ParticipantChanged(events.SubjectBookingCancelled, sessionID, removed)
	for _, p := range promoted {
		s.publisher.ParticipantChanged(events.SubjectWaitlistPromoted, sessionID, p)
	}
	if reopened {
		s.publisher.StatusChanged(sessionID, domain.StatusClosed, domain.StatusOpen)
	}

	s.logger.Info("CancelBooking: email=%s cancelled for session id=%s, promoted=%d", email, sessionID, len(promoted))
	return result, nil
}

// RemoveFromWaitlist убирает участника из листа ожидания. false - его там нет
func (s *Service) RemoveFromWaitlist(ctx context.Context, sessionID, email string) (bool, error) {
	s.logger.Info("RemoveFromWaitlist: session id=%s, email=%s", sessionID, email)

	if strings.TrimSpace(email) == "" {
		return false, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	unlock, err := s.lock(ctx, sessionKey(sessionID))
	if err != nil {
		s.logger.Error("RemoveFromWaitlist: %v", err)
		return false, err
	}
	defer unlock()

	var removed *domain.Participant
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		removed = nil

		session, err := s.getSession(txCtx, "RemoveFromWaitlist", sessionID)
		if err != nil {
			return err
		}

		idx := session.WaitlistIndex(email)
		if idx < 0 {
			return nil
		}

		p := session.Waitlist[idx]
		removed = &p
		session.Waitlist = append(session.Waitlist[:idx:idx], session.Waitlist[idx+1:]...)
		session.UpdatedAt = s.now()
		return s.update(txCtx, "RemoveFromWaitlist", session)
	})
	if err != nil {
		return false, err
	}

	if removed == nil {
		s.logger.Warn("RemoveFromWaitlist: email=%s not on waitlist of session id=%s", email, sessionID)
		return false, nil
	}

	s.publisher.ParticipantChanged(events.SubjectWaitlistRemoved, sessionID, *removed)
	s.logger.Info("RemoveFromWaitlist: email=%s removed from session id=%s", email, sessionID)
	return true, nil
}

func (s *Service) newParticipant(req *models.ParticipantRequest) (domain.Participant, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if name == "" {
		return domain.Participant{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return domain.Participant{}, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return domain.Participant{}, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return domain.Participant{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Phone: req.Phone,
		Notes: req.Notes,
	}, nil
}

func rejected(reason, message string) *models.BookResult {
	return &models.BookResult{Success: false, Reason: reason, Message: message}
}
