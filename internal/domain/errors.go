package domain

import "errors"

var (
	// ErrInvalidTimeFormat возвращается при некорректной дате или времени HH:MM
	ErrInvalidTimeFormat = errors.New("domain: invalid time format")

	// ErrInvalidDuration возвращается при неположительной длительности
	ErrInvalidDuration = errors.New("domain: invalid duration")

	// ErrInvalidSlot возвращается, если окно не является одним из канонических 15-минутных окон
	ErrInvalidSlot = errors.New("domain: invalid equipment slot")

	// ErrInvalidEquipmentType возвращается для неизвестного типа оборудования
	ErrInvalidEquipmentType = errors.New("domain: invalid equipment type")

	// ErrInvalidStatus возвращается для неизвестного статуса сессии
	ErrInvalidStatus = errors.New("domain: invalid session status")

	// ErrInvalidSession возвращается, если сессия нарушает инварианты
	ErrInvalidSession = errors.New("domain: invalid session")
)
