package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sessions: invalid input data")

	// ErrCapacityViolation возвращается при уменьшении мест ниже числа записавшихся
	ErrCapacityViolation = errors.New("sessions: capacity below current participants")

	// ErrWaitlistViolation возвращается при уменьшении или отключении непустого листа ожидания
	ErrWaitlistViolation = errors.New("sessions: waitlist change violates current queue")

	// ErrEquipmentConflict возвращается, когда выбранное окно оборудования уже занято
	ErrEquipmentConflict = errors.New("sessions: equipment slot is not available")

	// ErrRoomConflict возвращается, когда зал занят другой сессией в это время
	ErrRoomConflict = errors.New("sessions: room is occupied at this time")

	// ErrStatusTransition возвращается при попытке вывести сессию из терминального статуса
	ErrStatusTransition = errors.New("sessions: status transition not allowed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions: internal error")
)
