package lock

import "errors"

var (
	// ErrLockTimeout возвращается, если ключ не удалось захватить до отмены контекста
	ErrLockTimeout = errors.New("lock: acquire timeout")

	// ErrRedis возвращается при ошибках обращения к Redis
	ErrRedis = errors.New("lock: redis error")
)
