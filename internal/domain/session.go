package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// Participant участник сессии (в списке записавшихся или в листе ожидания)
type Participant struct {
	ID       string
	Name     string
	Email    string // ключ идентичности в пределах сессии
	Phone    *string
	Notes    *string
	JoinedAt time.Time
}

// Session занятие с тренером, залом, временем и вместимостью
type Session struct {
	ID              string
	Name            string // название активности
	Trainer         string
	Room            string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	MaxSpots        int
	MaxWaitlist     int // 0 = мест в листе ожидания нет
	EnableWaitlist  bool
	Status          SessionStatus

	Participants      []Participant
	Waitlist          []Participant // FIFO: первый элемент продвигается первым
	EquipmentBookings EquipmentBookings

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail приводит email к виду для сравнения
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Clone возвращает глубокую копию сессии
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Participants = append([]Participant(nil), s.Participants...)
	c.Waitlist = append([]Participant(nil), s.Waitlist...)
	c.EquipmentBookings = s.EquipmentBookings.Clone()
	return &c
}

// Location локация студии из названия зала
func (s *Session) Location() string {
	return LocationFromRoom(s.Room)
}

// TimeRange абсолютный интервал сессии
func (s *Session) TimeRange() (TimeRange, error) {
	return ComputeTimeRange(s.Date, s.StartTime, s.DurationMinutes)
}

// HasFreeSpot возвращает true, если есть свободное место
func (s *Session) HasFreeSpot() bool {
	return len(s.Participants) < s.MaxSpots
}

// WaitlistHasRoom возвращает true, если в лист ожидания ещё можно встать
func (s *Session) WaitlistHasRoom() bool {
	if !s.EnableWaitlist {
		return false
	}
	return len(s.Waitlist) < s.MaxWaitlist
}

// ParticipantIndex индекс участника по email или -1
func (s *Session) ParticipantIndex(email string) int {
	return indexByEmail(s.Participants, email)
}

// WaitlistIndex индекс записи листа ожидания по email или -1
func (s *Session) WaitlistIndex(email string) int {
	return indexByEmail(s.Waitlist, email)
}

// HasEmail проверяет email в обоих списках
func (s *Session) HasEmail(email string) bool {
	return s.ParticipantIndex(email) >= 0 || s.WaitlistIndex(email) >= 0
}

// PromoteFromWaitlist переносит голову листа ожидания в участники, пока есть места
// Возвращает продвинутых в порядке продвижения
func (s *Session) PromoteFromWaitlist() []Participant {
	var promoted []Participant
	for s.HasFreeSpot() && len(s.Waitlist) > 0 {
		head := s.Waitlist[0]
		s.Waitlist = s.Waitlist[1:]
		s.Participants = append(s.Participants, head)
		promoted = append(promoted, head)
	}
	return promoted
}

// Validate проверяет инварианты сессии
func (s *Session) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSession)
	}
	if strings.TrimSpace(s.Trainer) == "" {
		return fmt.Errorf("%w: trainer is required", ErrInvalidSession)
	}
	if strings.TrimSpace(s.Room) == "" {
		return fmt.Errorf("%w: room is required", ErrInvalidSession)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTimeFormat)
	}
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	if s.DurationMinutes < MinDurationMinutes || s.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: %d minutes", ErrInvalidDuration, s.DurationMinutes)
	}
	if s.MaxSpots < MinSpots || s.MaxSpots > MaxSpots {
		return fmt.Errorf("%w: maxSpots must be between %d and %d", ErrInvalidSession, MinSpots, MaxSpots)
	}
	if s.MaxWaitlist < 0 || s.MaxWaitlist > MaxWaitlist {
		return fmt.Errorf("%w: maxWaitlist must be between 0 and %d", ErrInvalidSession, MaxWaitlist)
	}
	if !s.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s.Status)
	}
	if len(s.Participants) > s.MaxSpots {
		return fmt.Errorf("%w: %d participants exceed %d spots", ErrInvalidSession, len(s.Participants), s.MaxSpots)
	}
	if !s.EnableWaitlist && len(s.Waitlist) > 0 {
		return fmt.Errorf("%w: waitlist is disabled but not empty", ErrInvalidSession)
	}
	if len(s.Waitlist) > s.MaxWaitlist {
		return fmt.Errorf("%w: %d waitlisted exceed %d", ErrInvalidSession, len(s.Waitlist), s.MaxWaitlist)
	}

	seen := make(map[string]struct{}, len(s.Participants)+len(s.Waitlist))
	for _, list := range [][]Participant{s.Participants, s.Waitlist} {
		for _, p := range list {
			email := NormalizeEmail(p.Email)
			if _, dup := seen[email]; dup {
				return fmt.Errorf("%w: duplicate email %q", ErrInvalidSession, email)
			}
			seen[email] = struct{}{}
		}
	}

	return s.EquipmentBookings.Validate(s.DurationMinutes)
}

func indexByEmail(list []Participant, email string) int {
	target := NormalizeEmail(email)
	for i, p := range list {
		if NormalizeEmail(p.Email) == target {
			return i
		}
	}
	return -1
}
