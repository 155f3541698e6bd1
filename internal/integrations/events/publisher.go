package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// Publisher публикует доменные события в NATS
// События отправляются после коммита. Ошибка публикации логируется и не откатывает операцию
type Publisher struct {
	conn   Conn
	now    func() time.Time
	logger Logger
}

// Connect подключается к NATS и создает публикатор
func Connect(url string, timeout time.Duration, logger Logger) (*Publisher, *nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Timeout(timeout), nats.Name("studio-service"))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return NewPublisher(nc, logger), nc, nil
}

// NewPublisher создает публикатор поверх готового соединения
func NewPublisher(conn Conn, logger Logger) *Publisher {
	return &Publisher{conn: conn, now: time.Now, logger: logger}
}

// ParticipantChanged публикует событие об участнике сессии
func (p *Publisher) ParticipantChanged(subject, sessionID string, participant domain.Participant) {
	p.publish(subject, ParticipantEvent{
		EventType:     subject,
		SessionID:     sessionID,
		ParticipantID: participant.ID,
		Email:         participant.Email,
		Name:          participant.Name,
		OccurredAt:    p.now(),
	})
}

// SlotsDropped публикует список окон оборудования, снятых с сессии
func (p *Publisher) SlotsDropped(sessionID string, dropped []domain.DroppedSlot) {
	slots := make([]DroppedSlot, 0, len(dropped))
	for _, d := range dropped {
		slots = append(slots, DroppedSlot{
			Equipment:   string(d.Equipment),
			StartMinute: d.Slot.StartMinute,
			EndMinute:   d.Slot.EndMinute,
			Reason:      d.Reason,
		})
	}

	p.publish(SubjectEquipmentSlotDropped, SlotsDroppedEvent{
		EventType:  SubjectEquipmentSlotDropped,
		SessionID:  sessionID,
		Slots:      slots,
		OccurredAt: p.now(),
	})
}

// StatusChanged публикует смену статуса сессии
func (p *Publisher) StatusChanged(sessionID string, from, to domain.SessionStatus) {
	p.publish(SubjectSessionStatusChanged, StatusChangedEvent{
		EventType:  SubjectSessionStatusChanged,
		SessionID:  sessionID,
		From:       string(from),
		To:         string(to),
		OccurredAt: p.now(),
	})
}

func (p *Publisher) publish(subject string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Publisher: %v: subject=%s: %v", ErrMarshal, subject, err)
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("Publisher: %v: subject=%s: %v", ErrPublish, subject, err)
		return
	}

	p.logger.Info("Publisher: published event subject=%s", subject)
}

// Noop публикатор, который ничего не отправляет (NATS не настроен)
type Noop struct{}

func (Noop) ParticipantChanged(string, string, domain.Participant) {}

func (Noop) SlotsDropped(string, []domain.DroppedSlot) {}

func (Noop) StatusChanged(string, domain.SessionStatus, domain.SessionStatus) {}
