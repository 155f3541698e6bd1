package events

// Conn минимальный интерфейс соединения NATS (реализуется *nats.Conn)
type Conn interface {
	Publish(subject string, data []byte) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
