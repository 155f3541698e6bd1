package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 24 * 60
	MinSpots           = 1
	MaxSpots           = 500
	MaxWaitlist        = 500
	MaxNotesLength     = 500

	// EquipmentSlotMinutes длина одного окна бронирования оборудования
	EquipmentSlotMinutes = 15

	// RowMinutes высота одной строки сетки расписания
	RowMinutes = 60
)

// locationSeparator разделитель "<зал> - <локация>" в названии зала
const locationSeparator = " - "
