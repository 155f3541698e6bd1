package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/session"
)

// SessionRepository in-memory реализация репозитория сессий
// Записи копируются на входе и выходе, вызывающий не может изменить хранимое состояние
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	order    []string
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*domain.Session)}
}

// List возвращает все сессии, упорядоченные по дате и времени начала
func (r *SessionRepository) List(_ context.Context) ([]*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(*domain.Session) bool { return true }), nil
}

// ListByDate возвращает сессии на календарную дату
func (r *SessionRepository) ListByDate(_ context.Context, date time.Time) ([]*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(s *domain.Session) bool { return domain.SameDate(s.Date, date) }), nil
}

func (r *SessionRepository) GetByID(_ context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (r *SessionRepository) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s.Clone()
	r.order = append(r.order, s.ID)
	return s, nil
}

// Update перезаписывает сессию целиком
func (r *SessionRepository) Update(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; !ok {
		return sessionRepo.ErrSessionNotFound
	}
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return sessionRepo.ErrSessionNotFound
	}
	delete(r.sessions, id)

	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// sorted возвращает копии подходящих сессий; при равных дате и времени порядок вставки сохраняется
func (r *SessionRepository) sorted(match func(*domain.Session) bool) []*domain.Session {
	out := make([]*domain.Session, 0, len(r.order))
	for _, id := range r.order {
		s := r.sessions[id]
		if match(s) {
			out = append(out, s.Clone())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !domain.SameDate(out[i].Date, out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime.IsBefore(out[j].StartTime)
	})
	return out
}
