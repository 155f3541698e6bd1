package medical

import "errors"

var (
	// ErrRecordNotFound возвращается, когда анкета не найдена
	ErrRecordNotFound = errors.New("medical: record not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("medical: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("medical: internal error")
)
