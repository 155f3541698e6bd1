package domain

import (
	"strings"
	"time"
)

// SessionFilter критерии отбора сессий. nil - критерий не применяется
type SessionFilter struct {
	Date     *time.Time
	Trainer  *string
	Activity *string
	Location *string
}

// LocationFromRoom последний сегмент названия зала после " - ", иначе весь зал
//
// Примеры:
// - "Studio A - Downtown" → "Downtown"
// - "Studio A - East - Uptown" → "Uptown"
// - "Studio A" → "Studio A"
func LocationFromRoom(room string) string {
	idx := strings.LastIndex(room, locationSeparator)
	if idx < 0 {
		return room
	}
	return room[idx+len(locationSeparator):]
}

// Matches проверяет сессию по всем заданным критериям (И)
func (f SessionFilter) Matches(s *Session) bool {
	if f.Date != nil && !SameDate(s.Date, *f.Date) {
		return false
	}
	if f.Trainer != nil && s.Trainer != *f.Trainer {
		return false
	}
	if f.Activity != nil && s.Name != *f.Activity {
		return false
	}
	if f.Location != nil && s.Location() != *f.Location {
		return false
	}
	return true
}

// FilterSessions сужает список, сохраняя исходный порядок
func FilterSessions(sessions []*Session, filter SessionFilter) []*Session {
	out := make([]*Session, 0, len(sessions))
	for _, s := range sessions {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}
