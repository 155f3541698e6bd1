package domain

import (
	"fmt"
	"strings"
	"time"
)

// SessionStatus статус сессии
type SessionStatus string

const (
	StatusDraft     SessionStatus = "draft"
	StatusOpen      SessionStatus = "open"
	StatusClosed    SessionStatus = "closed"
	StatusOngoing   SessionStatus = "ongoing"
	StatusFinished  SessionStatus = "finished"
	StatusCancelled SessionStatus = "cancelled"
)

// legacyStatuses устаревшие написания, которые приводятся к каноническим при разборе
var legacyStatuses = map[string]SessionStatus{
	"pending":  StatusDraft,
	"on going": StatusOngoing,
}

// ParseSessionStatus разбирает статус, приводя устаревшие написания к каноническим
func ParseSessionStatus(s string) (SessionStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if legacy, ok := legacyStatuses[normalized]; ok {
		return legacy, nil
	}

	status := SessionStatus(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsValid возвращает true для канонических статусов
func (s SessionStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusClosed, StatusOngoing, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal возвращает true для статусов, из которых нет переходов
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusFinished
}

// AcceptsBookings возвращает true, если в статусе разрешена запись
func (s SessionStatus) AcceptsBookings() bool {
	return s == StatusOpen || s == StatusClosed || s == StatusOngoing
}

// DeriveStatus вычисляет отображаемый статус сессии на момент now
// cancelled поглощающий и проверяется первым. draft и finished от времени не зависят.
// Дата и время сессии трактуются в часовом поясе now
func DeriveStatus(session *Session, now time.Time) SessionStatus {
	switch session.Status {
	case StatusCancelled, StatusFinished, StatusDraft:
		return session.Status
	}

	date := time.Date(session.Date.Year(), session.Date.Month(), session.Date.Day(), 0, 0, 0, 0, now.Location())
	r, err := ComputeTimeRange(date, session.StartTime, session.DurationMinutes)
	if err != nil {
		return session.Status
	}

	switch {
	case !now.Before(r.End):
		return StatusFinished
	case !now.Before(r.Start):
		return StatusOngoing
	}
	return session.Status
}
