package events

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к NATS
	ErrConnect = errors.New("events: failed to connect to nats")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("events: failed to marshal event")

	// ErrPublish возвращается при ошибке публикации
	ErrPublish = errors.New("events: failed to publish event")
)
