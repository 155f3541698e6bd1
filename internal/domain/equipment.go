package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// EquipmentType тип оборудования студии
type EquipmentType string

const (
	EquipmentLaser    EquipmentType = "laser"
	EquipmentReformer EquipmentType = "reformer"
	EquipmentCadillac EquipmentType = "cadillac"
	EquipmentBarrel   EquipmentType = "barrel"
	EquipmentChair    EquipmentType = "chair"
)

// EquipmentTypes все типы оборудования в порядке отображения
var EquipmentTypes = []EquipmentType{
	EquipmentLaser,
	EquipmentReformer,
	EquipmentCadillac,
	EquipmentBarrel,
	EquipmentChair,
}

// ParseEquipmentType разбирает тип оборудования
func ParseEquipmentType(s string) (EquipmentType, error) {
	t := EquipmentType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEquipmentType, s)
	}
	return t, nil
}

func (t EquipmentType) IsValid() bool {
	switch t {
	case EquipmentLaser, EquipmentReformer, EquipmentCadillac, EquipmentBarrel, EquipmentChair:
		return true
	}
	return false
}

// EquipmentSlot окно бронирования оборудования в минутах от начала сессии [StartMinute, EndMinute)
type EquipmentSlot struct {
	StartMinute int
	EndMinute   int
}

// CanonicalSlots четыре допустимых 15-минутных окна
var CanonicalSlots = []EquipmentSlot{
	{StartMinute: 0, EndMinute: 15},
	{StartMinute: 15, EndMinute: 30},
	{StartMinute: 30, EndMinute: 45},
	{StartMinute: 45, EndMinute: 60},
}

// IsCanonical возвращает true, если окно совпадает с одним из канонических
func (s EquipmentSlot) IsCanonical() bool {
	for _, c := range CanonicalSlots {
		if s == c {
			return true
		}
	}
	return false
}

// FitsDuration возвращает true, если окно помещается в длительность сессии
func (s EquipmentSlot) FitsDuration(durationMinutes int) bool {
	return s.EndMinute <= durationMinutes
}

func (s EquipmentSlot) String() string {
	return fmt.Sprintf("[%d,%d)", s.StartMinute, s.EndMinute)
}

// ValidateSlot проверяет, что окно каноническое
func ValidateSlot(slot EquipmentSlot) error {
	if !slot.IsCanonical() {
		return fmt.Errorf("%w: %s", ErrInvalidSlot, slot)
	}
	return nil
}

// EquipmentBookings забронированные окна по типам оборудования
type EquipmentBookings map[EquipmentType][]EquipmentSlot

// Clone возвращает глубокую копию
func (b EquipmentBookings) Clone() EquipmentBookings {
	if b == nil {
		return nil
	}
	out := make(EquipmentBookings, len(b))
	for t, slots := range b {
		out[t] = append([]EquipmentSlot(nil), slots...)
	}
	return out
}

// IsEmpty возвращает true, если не забронировано ни одного окна
func (b EquipmentBookings) IsEmpty() bool {
	for _, slots := range b {
		if len(slots) > 0 {
			return false
		}
	}
	return true
}

// Types возвращает типы с непустыми бронированиями в порядке EquipmentTypes
func (b EquipmentBookings) Types() []EquipmentType {
	out := make([]EquipmentType, 0, len(b))
	for _, t := range EquipmentTypes {
		if len(b[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// Validate проверяет типы, каноничность окон, отсутствие дублей и попадание в длительность
func (b EquipmentBookings) Validate(durationMinutes int) error {
	for t, slots := range b {
		if !t.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidEquipmentType, t)
		}

		seen := make(map[EquipmentSlot]struct{}, len(slots))
		for _, slot := range slots {
			if err := ValidateSlot(slot); err != nil {
				return err
			}
			if !slot.FitsDuration(durationMinutes) {
				return fmt.Errorf("%w: %s %s exceeds duration %d", ErrInvalidSlot, t, slot, durationMinutes)
			}
			if _, dup := seen[slot]; dup {
				return fmt.Errorf("%w: %s %s booked twice", ErrInvalidSlot, t, slot)
			}
			seen[slot] = struct{}{}
		}
	}
	return nil
}

// SortSlots упорядочивает окна каждого типа по началу
func (b EquipmentBookings) SortSlots() {
	for t := range b {
		slots := b[t]
		sort.Slice(slots, func(i, j int) bool { return slots[i].StartMinute < slots[j].StartMinute })
	}
}

// DroppedSlot окно, снятое с сессии после изменения её времени
type DroppedSlot struct {
	Equipment EquipmentType
	Slot      EquipmentSlot
	Reason    string
}

const (
	DropReasonExceedsDuration = "exceeds_duration"
	DropReasonUnavailable     = "unavailable"
)

// CheckEquipmentAvailable проверяет, свободно ли окно оборудования на дату
// Сравнивает абсолютные окна со всеми неотменёнными сессиями этой даты, кроме excludeSessionID
func CheckEquipmentAvailable(
	equipment EquipmentType,
	date time.Time,
	startTime types.TimeString,
	slot EquipmentSlot,
	sessions []*Session,
	excludeSessionID string,
) (bool, error) {
	if !equipment.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidEquipmentType, equipment)
	}
	if err := ValidateSlot(slot); err != nil {
		return false, err
	}

	candidate, err := AbsoluteEquipmentWindow(date, startTime, slot)
	if err != nil {
		return false, err
	}

	for _, s := range sessions {
		if s.ID == excludeSessionID || s.Status == StatusCancelled || !SameDate(s.Date, date) {
			continue
		}

		for _, booked := range s.EquipmentBookings[equipment] {
			other, err := AbsoluteEquipmentWindow(s.Date, s.StartTime, booked)
			if err != nil {
				// Запись с битым временем не может занимать оборудование
				continue
			}
			if candidate.Overlaps(other) {
				return false, nil
			}
		}
	}

	return true, nil
}

// OfferableSlots канонические окна, которые помещаются в длительность и свободны
func OfferableSlots(
	equipment EquipmentType,
	date time.Time,
	startTime types.TimeString,
	durationMinutes int,
	sessions []*Session,
	excludeSessionID string,
) ([]EquipmentSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}

	offerable := make([]EquipmentSlot, 0, len(CanonicalSlots))
	for _, slot := range CanonicalSlots {
		if !slot.FitsDuration(durationMinutes) {
			continue
		}
		ok, err := CheckEquipmentAvailable(equipment, date, startTime, slot, sessions, excludeSessionID)
		if err != nil {
			return nil, err
		}
		if ok {
			offerable = append(offerable, slot)
		}
	}
	return offerable, nil
}
