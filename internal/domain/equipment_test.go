package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEquipmentAvailable_AbsoluteOverlap(t *testing.T) {
	date := mustDate(t, "2025-03-10")
	sessionA := &Session{
		ID:              "a",
		Date:            date,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          StatusOpen,
		EquipmentBookings: EquipmentBookings{
			EquipmentLaser: {{StartMinute: 0, EndMinute: 15}},
		},
	}
	sessions := []*Session{sessionA}

	// B в 10:05, окно [0,15) = 10:05-10:20 пересекается с 10:00-10:15 у A
	ok, err := CheckEquipmentAvailable(EquipmentLaser, date, "10:05", EquipmentSlot{StartMinute: 0, EndMinute: 15}, sessions, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	// B в 10:05, окно [45,60) = 10:50-11:05 свободно
	ok, err = CheckEquipmentAvailable(EquipmentLaser, date, "10:05", EquipmentSlot{StartMinute: 45, EndMinute: 60}, sessions, "b")
	require.NoError(t, err)
	assert.True(t, ok)

	// Другой тип оборудования не конфликтует
	ok, err = CheckEquipmentAvailable(EquipmentReformer, date, "10:05", EquipmentSlot{StartMinute: 0, EndMinute: 15}, sessions, "b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckEquipmentAvailable_SkipsExcludedCancelledAndOtherDates(t *testing.T) {
	date := mustDate(t, "2025-03-10")
	booked := EquipmentBookings{EquipmentLaser: {{StartMinute: 0, EndMinute: 15}}}
	slot := EquipmentSlot{StartMinute: 0, EndMinute: 15}

	self := &Session{ID: "self", Date: date, StartTime: "10:00", DurationMinutes: 60, Status: StatusOpen, EquipmentBookings: booked}
	cancelled := &Session{ID: "c", Date: date, StartTime: "10:00", DurationMinutes: 60, Status: StatusCancelled, EquipmentBookings: booked}
	otherDay := &Session{ID: "d", Date: mustDate(t, "2025-03-11"), StartTime: "10:00", DurationMinutes: 60, Status: StatusOpen, EquipmentBookings: booked}

	ok, err := CheckEquipmentAvailable(EquipmentLaser, date, "10:00", slot, []*Session{self, cancelled, otherDay}, "self")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckEquipmentAvailable_RejectsNonCanonicalSlot(t *testing.T) {
	date := mustDate(t, "2025-03-10")

	_, err := CheckEquipmentAvailable(EquipmentLaser, date, "10:00", EquipmentSlot{StartMinute: 5, EndMinute: 20}, nil, "")
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = CheckEquipmentAvailable("trampoline", date, "10:00", EquipmentSlot{StartMinute: 0, EndMinute: 15}, nil, "")
	assert.ErrorIs(t, err, ErrInvalidEquipmentType)
}

func TestOfferableSlots_FiltersByDurationAndAvailability(t *testing.T) {
	date := mustDate(t, "2025-03-10")
	other := &Session{
		ID: "a", Date: date, StartTime: "10:00", DurationMinutes: 60, Status: StatusOpen,
		EquipmentBookings: EquipmentBookings{EquipmentChair: {{StartMinute: 15, EndMinute: 30}}},
	}

	slots, err := OfferableSlots(EquipmentChair, date, "10:00", 45, []*Session{other}, "")
	require.NoError(t, err)
	assert.Equal(t, []EquipmentSlot{
		{StartMinute: 0, EndMinute: 15},
		{StartMinute: 30, EndMinute: 45},
	}, slots)
}

func TestEquipmentBookings_Validate(t *testing.T) {
	assert.NoError(t, EquipmentBookings{EquipmentLaser: {{0, 15}, {45, 60}}}.Validate(60))
	assert.ErrorIs(t, EquipmentBookings{EquipmentLaser: {{45, 60}}}.Validate(50), ErrInvalidSlot)
	assert.ErrorIs(t, EquipmentBookings{EquipmentLaser: {{0, 15}, {0, 15}}}.Validate(60), ErrInvalidSlot)
	assert.ErrorIs(t, EquipmentBookings{"rope": {{0, 15}}}.Validate(60), ErrInvalidEquipmentType)
}
