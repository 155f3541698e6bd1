package models

import (
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// Booking reasons / outcomes
const (
	OutcomeBooked          = "booked"
	OutcomeWaitlisted      = "waitlisted"
	ReasonWaitlistFull     = "waitlist_full"
	ReasonWaitlistDisabled = "waitlist_disabled"
	ReasonDuplicate        = "duplicate"
	ReasonUnavailable      = "unavailable"
)

// Request модели

// Slot окно оборудования в минутах от начала сессии
type Slot struct {
	StartMinute int `json:"startMinute"`
	EndMinute   int `json:"endMinute"`
}

// CreateSessionRequest запрос на создание сессии
type CreateSessionRequest struct {
	Name              string            `json:"name" validate:"required,max=255"`
	Trainer           string            `json:"trainer" validate:"required,max=255"`
	Room              string            `json:"room" validate:"required,max=255"`
	Date              string            `json:"date" validate:"required"`      // "2025-03-10"
	StartTime         string            `json:"startTime" validate:"required"` // "10:00"
	DurationMinutes   int               `json:"durationMinutes" validate:"gt=0"`
	MaxSpots          int               `json:"maxSpots" validate:"gte=1"`
	MaxWaitlist       int               `json:"maxWaitlist" validate:"gte=0"`
	EnableWaitlist    bool              `json:"enableWaitlist"`
	Status            string            `json:"status,omitempty"` // пусто = draft
	EquipmentBookings map[string][]Slot `json:"equipmentBookings,omitempty"`
}

// UpdateSessionRequest частичное обновление сессии. nil - поле не меняется
// Перенос drag-and-drop передаёт только room, date и startTime
type UpdateSessionRequest struct {
	Name              *string            `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Trainer           *string            `json:"trainer,omitempty" validate:"omitempty,min=1,max=255"`
	Room              *string            `json:"room,omitempty" validate:"omitempty,min=1,max=255"`
	Date              *string            `json:"date,omitempty"`
	StartTime         *string            `json:"startTime,omitempty"`
	DurationMinutes   *int               `json:"durationMinutes,omitempty" validate:"omitempty,gt=0"`
	MaxSpots          *int               `json:"maxSpots,omitempty" validate:"omitempty,gte=1"`
	MaxWaitlist       *int               `json:"maxWaitlist,omitempty" validate:"omitempty,gte=0"`
	EnableWaitlist    *bool              `json:"enableWaitlist,omitempty"`
	Status            *string            `json:"status,omitempty"`
	EquipmentBookings *map[string][]Slot `json:"equipmentBookings,omitempty"`
}

// ParticipantRequest данные участника для записи
type ParticipantRequest struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ListSessionsRequest фильтр списка сессий. nil - критерий не применяется
type ListSessionsRequest struct {
	Date     *string
	Trainer  *string
	Activity *string
	Location *string
}

// Response модели

// ParticipantResponse участник сессии
type ParticipantResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    *string   `json:"phone,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}

// SessionResponse сессия с вычисляемыми полями для отображения
type SessionResponse struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	Trainer           string                `json:"trainer"`
	Room              string                `json:"room"`
	Location          string                `json:"location"`
	Date              string                `json:"date"`      // "2025-03-10"
	StartTime         string                `json:"startTime"` // "10:00"
	EndTime           string                `json:"endTime"`   // "11:00"
	DurationMinutes   int                   `json:"durationMinutes"`
	RowSpan           int                   `json:"rowSpan"`
	MaxSpots          int                   `json:"maxSpots"`
	MaxWaitlist       int                   `json:"maxWaitlist"`
	EnableWaitlist    bool                  `json:"enableWaitlist"`
	Status            string                `json:"status"`
	DerivedStatus     string                `json:"derivedStatus"`
	AvailableSpots    int                   `json:"availableSpots"`
	Participants      []ParticipantResponse `json:"participants"`
	Waitlist          []ParticipantResponse `json:"waitlist"`
	EquipmentBookings map[string][]Slot     `json:"equipmentBookings"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// BookResult результат записи. Бизнес-отказ - Success=false с причиной
type BookResult struct {
	Success      bool   `json:"success"`
	IsWaitlisted bool   `json:"isWaitlisted"`
	Reason       string `json:"reason,omitempty"`
	Message      string `json:"message"`
}

// CancelResult результат отмены записи
type CancelResult struct {
	Success  bool                 `json:"success"`
	Message  string               `json:"message"`
	Promoted *ParticipantResponse `json:"promoted,omitempty"`
}

// DroppedSlotResponse окно оборудования, снятое после переноса
type DroppedSlotResponse struct {
	Equipment   string `json:"equipment"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
	Reason      string `json:"reason"`
}

// EditResult результат редактирования сессии
type EditResult struct {
	Session      *SessionResponse      `json:"session"`
	DroppedSlots []DroppedSlotResponse `json:"droppedSlots"`
}

// Конвертеры

// FromDomainSession конвертирует сессию, вычисляя статус на момент now
func FromDomainSession(s *domain.Session, now time.Time) *SessionResponse {
	resp := &SessionResponse{
		ID:                s.ID,
		Name:              s.Name,
		Trainer:           s.Trainer,
		Room:              s.Room,
		Location:          s.Location(),
		Date:              s.Date.Format(domain.DateFormat),
		StartTime:         s.StartTime.String(),
		DurationMinutes:   s.DurationMinutes,
		MaxSpots:          s.MaxSpots,
		MaxWaitlist:       s.MaxWaitlist,
		EnableWaitlist:    s.EnableWaitlist,
		Status:            string(s.Status),
		DerivedStatus:     string(domain.DeriveStatus(s, now)),
		AvailableSpots:    s.MaxSpots - len(s.Participants),
		Participants:      fromDomainParticipants(s.Participants),
		Waitlist:          fromDomainParticipants(s.Waitlist),
		EquipmentBookings: FromDomainEquipment(s.EquipmentBookings),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}

	if r, err := s.TimeRange(); err == nil {
		resp.EndTime = r.End.Format(domain.TimeFormat)
	}
	if span, err := domain.RowSpan(s.DurationMinutes); err == nil {
		resp.RowSpan = span
	}
	if resp.AvailableSpots < 0 {
		resp.AvailableSpots = 0
	}

	return resp
}

// FromDomainSessionList конвертирует список сессий
func FromDomainSessionList(sessions []*domain.Session, now time.Time) []*SessionResponse {
	out := make([]*SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, FromDomainSession(s, now))
	}
	return out
}

// FromDomainParticipant конвертирует участника
func FromDomainParticipant(p domain.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Notes:    p.Notes,
		JoinedAt: p.JoinedAt,
	}
}

// FromDomainEquipment конвертирует бронирования оборудования, сохраняя порядок окон
func FromDomainEquipment(b domain.EquipmentBookings) map[string][]Slot {
	out := make(map[string][]Slot, len(b))
	for _, t := range b.Types() {
		slots := make([]Slot, 0, len(b[t]))
		for _, slot := range b[t] {
			slots = append(slots, Slot{StartMinute: slot.StartMinute, EndMinute: slot.EndMinute})
		}
		out[string(t)] = slots
	}
	return out
}

// FromDomainDroppedSlots конвертирует снятые окна
func FromDomainDroppedSlots(dropped []domain.DroppedSlot) []DroppedSlotResponse {
	out := make([]DroppedSlotResponse, 0, len(dropped))
	for _, d := range dropped {
		out = append(out, DroppedSlotResponse{
			Equipment:   string(d.Equipment),
			StartMinute: d.Slot.StartMinute,
			EndMinute:   d.Slot.EndMinute,
			Reason:      d.Reason,
		})
	}
	return out
}

// ToDomainEquipment разбирает бронирования оборудования из запроса
func ToDomainEquipment(in map[string][]Slot) (domain.EquipmentBookings, error) {
	out := make(domain.EquipmentBookings, len(in))
	for rawType, slots := range in {
		t, err := domain.ParseEquipmentType(rawType)
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			continue
		}
		converted := make([]domain.EquipmentSlot, 0, len(slots))
		for _, slot := range slots {
			converted = append(converted, domain.EquipmentSlot{StartMinute: slot.StartMinute, EndMinute: slot.EndMinute})
		}
		out[t] = converted
	}
	out.SortSlots()
	return out, nil
}

func fromDomainParticipants(list []domain.Participant) []ParticipantResponse {
	out := make([]ParticipantResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *FromDomainParticipant(p))
	}
	return out
}
