package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/session"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
	"github.com/m04kA/SMC-StudioService/pkg/keylock"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

const defaultLockTimeout = 5 * time.Second

// Config параметры сервиса сессий
type Config struct {
	// CheckRoomConflicts запрещает пересечение сессий в одном зале
	CheckRoomConflicts bool
	// Location часовой пояс студии, в котором трактуются дата и время сессий
	Location *time.Location
	// LockTimeout ограничивает ожидание блокировки сессии
	LockTimeout time.Duration
}

// Service менеджер сессий: вместимость, лист ожидания, статусы, оборудование
// Все изменяющие операции выполняются под блокировкой ключа сессии и в сериализуемой транзакции
type Service struct {
	repo         SessionRepository
	txManager    TransactionManager
	locker       Locker
	publisher    EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	repo SessionRepository,
	txManager TransactionManager,
	locker Locker,
	publisher EventPublisher,
	metrics MetricsRecorder,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = defaultLockTimeout
	}

	return &Service{
		repo:         repo,
		txManager:    txManager,
		locker:       locker,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// CreateSession создает сессию
// Пустой статус означает draft. Окна оборудования проверяются на доступность
func (s *Service) CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("CreateSession: name=%s, trainer=%s, room=%s, date=%s, time=%s",
		req.Name, req.Trainer, req.Room, req.Date, req.StartTime)

	session, err := s.buildSession(req)
	if err != nil {
		s.logger.Warn("CreateSession: validation failed: %v", err)
		return nil, err
	}

	unlock, err := s.lock(ctx, scheduleKey(session.Date))
	if err != nil {
		s.logger.Error("CreateSession: %v", err)
		return nil, err
	}
	defer unlock()

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		sameDay, err := s.listByDate(txCtx, "CreateSession", session.Date)
		if err != nil {
			return err
		}

		if err := s.checkEquipment(session, sameDay); err != nil {
			s.logger.Warn("CreateSession: %v", err)
			return err
		}
		if err := s.checkRoom(session, sameDay); err != nil {
			s.logger.Warn("CreateSession: %v", err)
			return err
		}

		if _, err := s.repo.Create(txCtx, session); err != nil {
			s.logger.Error("CreateSession: failed to create session: %v", err)
			return fmt.Errorf("%w: CreateSession - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateSession: successfully created session id=%s", session.ID)
	return models.FromDomainSession(session, s.now()), nil
}

// GetSession получает сессию с вычисленным статусом
func (s *Service) GetSession(ctx context.Context, id string) (*models.SessionResponse, error) {
	s.logger.Info("GetSession: fetching session id=%s", id)

	var session *domain.Session
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		session, err = s.getSession(txCtx, "GetSession", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainSession(session, s.now()), nil
}

// ListSessions возвращает сессии, отфильтрованные по дате, тренеру, активности и локации
func (s *Service) ListSessions(ctx context.Context, req *models.ListSessionsRequest) ([]*models.SessionResponse, error) {
	filter, err := s.toDomainFilter(req)
	if err != nil {
		s.logger.Warn("ListSessions: invalid filter: %v", err)
		return nil, err
	}

	var sessions []*domain.Session
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		all, err := s.repo.List(txCtx)
		if err != nil {
			s.logger.Error("ListSessions: repository error: %v", err)
			return fmt.Errorf("%w: ListSessions - repository error: %v", ErrInternal, err)
		}
		sessions = domain.FilterSessions(s.localizeAll(all), filter)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListSessions: fetched %d sessions", len(sessions))
	return models.FromDomainSessionList(sessions, s.now()), nil
}

// DeleteSession удаляет сессию безвозвратно. false - сессии не было
// Медицинские анкеты, ссылающиеся на сессию, не затрагиваются
func (s *Service) DeleteSession(ctx context.Context, id string) (bool, error) {
	s.logger.Info("DeleteSession: deleting session id=%s", id)

	unlock, err := s.lock(ctx, sessionKey(id))
	if err != nil {
		s.logger.Error("DeleteSession: %v", err)
		return false, err
	}
	defer unlock()

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return ErrSessionNotFound
			}
			s.logger.Error("DeleteSession: repository error for session id=%s: %v", id, err)
			return fmt.Errorf("%w: DeleteSession - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if errors.Is(err, ErrSessionNotFound) {
		s.logger.Warn("DeleteSession: session id=%s not found", id)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.logger.Info("DeleteSession: successfully deleted session id=%s", id)
	return true, nil
}

// ChangeSessionStatus выставляет статус сессии вручную
// false - сессия уже в терминальном статусе (cancelled или finished), из него переходов нет
func (s *Service) ChangeSessionStatus(ctx context.Context, id string, rawStatus string) (bool, error) {
	s.logger.Info("ChangeSessionStatus: session id=%s, status=%s", id, rawStatus)

	status, err := domain.ParseSessionStatus(rawStatus)
	if err != nil {
		s.logger.Warn("ChangeSessionStatus: %v", err)
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	unlock, err := s.lock(ctx, sessionKey(id))
	if err != nil {
		s.logger.Error("ChangeSessionStatus: %v", err)
		return false, err
	}
	defer unlock()

	var changed bool
	var from domain.SessionStatus
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		changed = false

		session, err := s.getSession(txCtx, "ChangeSessionStatus", id)
		if err != nil {
			return err
		}

		from = session.Status
		if from.IsTerminal() {
			return nil
		}
		if from == status {
			changed = true
			return nil
		}

		session.Status = status
		session.UpdatedAt = s.now()
		if err := s.update(txCtx, "ChangeSessionStatus", session); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if !changed {
		s.logger.Warn("ChangeSessionStatus: session id=%s stays %s", id, from)
		return false, nil
	}
	if from != status {
		s.publisher.StatusChanged(id, from, status)
	}

	s.logger.Info("ChangeSessionStatus: session id=%s %s -> %s", id, from, status)
	return true, nil
}

// lock захватывает ключи в отсортированном порядке с таймаутом ожидания
func (s *Service) lock(ctx context.Context, keys ...string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.cfg.LockTimeout)
	defer cancel()

	unlock, err := keylock.LockAll(lockCtx, s.locker, keys...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to lock %s: %v", ErrInternal, strings.Join(keys, ","), err)
	}
	return unlock, nil
}

func (s *Service) getSession(ctx context.Context, op, id string) (*domain.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: session id=%s not found", op, id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for session id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return s.localize(session), nil
}

func (s *Service) listByDate(ctx context.Context, op string, date time.Time) ([]*domain.Session, error) {
	sessions, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("%s: failed to list sessions on %s: %v", op, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return s.localizeAll(sessions), nil
}

func (s *Service) update(ctx context.Context, op string, session *domain.Session) error {
	if err := s.repo.Update(ctx, session); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("%s: failed to update session id=%s: %v", op, session.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

// checkEquipment проверяет, что каждое окно оборудования сессии свободно
func (s *Service) checkEquipment(session *domain.Session, sameDay []*domain.Session) error {
	for _, t := range session.EquipmentBookings.Types() {
		for _, slot := range session.EquipmentBookings[t] {
			ok, err := domain.CheckEquipmentAvailable(t, session.Date, session.StartTime, slot, sameDay, session.ID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if !ok {
				return fmt.Errorf("%w: %s %s", ErrEquipmentConflict, t, slot)
			}
		}
	}
	return nil
}

// checkRoom проверяет, что зал не занят другой неотменённой сессией в это время
func (s *Service) checkRoom(session *domain.Session, sameDay []*domain.Session) error {
	if !s.cfg.CheckRoomConflicts || session.Status == domain.StatusCancelled {
		return nil
	}

	r, err := session.TimeRange()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, other := range sameDay {
		if other.ID == session.ID || other.Status == domain.StatusCancelled || other.Room != session.Room {
			continue
		}
		otherRange, err := other.TimeRange()
		if err != nil {
			continue
		}
		if r.Overlaps(otherRange) {
			return fmt.Errorf("%w: %s overlaps session id=%s", ErrRoomConflict, session.Room, other.ID)
		}
	}
	return nil
}

func (s *Service) buildSession(req *models.CreateSessionRequest) (*domain.Session, error) {
	date, err := domain.ParseDate(req.Date, s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	status := domain.StatusDraft
	if strings.TrimSpace(req.Status) != "" {
		status, err = domain.ParseSessionStatus(req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	equipment, err := models.ToDomainEquipment(req.EquipmentBookings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	session := &domain.Session{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(req.Name),
		Trainer:           strings.TrimSpace(req.Trainer),
		Room:              strings.TrimSpace(req.Room),
		Date:              date,
		StartTime:         startTime,
		DurationMinutes:   req.DurationMinutes,
		MaxSpots:          req.MaxSpots,
		MaxWaitlist:       req.MaxWaitlist,
		EnableWaitlist:    req.EnableWaitlist,
		Status:            status,
		Participants:      []domain.Participant{},
		Waitlist:          []domain.Participant{},
		EquipmentBookings: equipment,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return session, nil
}

func (s *Service) toDomainFilter(req *models.ListSessionsRequest) (domain.SessionFilter, error) {
	filter := domain.SessionFilter{
		Trainer:  req.Trainer,
		Activity: req.Activity,
		Location: req.Location,
	}
	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date, s.cfg.Location)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Date = &date
	}
	return filter, nil
}

// now текущее время в часовом поясе студии
func (s *Service) now() time.Time {
	return s.timeProvider.Now().In(s.cfg.Location)
}

// localize переводит дату сессии в часовой пояс студии (драйвер БД отдаёт DATE в UTC)
func (s *Service) localize(session *domain.Session) *domain.Session {
	y, m, d := session.Date.Date()
	session.Date = time.Date(y, m, d, 0, 0, 0, 0, s.cfg.Location)
	return session
}

func (s *Service) localizeAll(sessions []*domain.Session) []*domain.Session {
	for _, session := range sessions {
		s.localize(session)
	}
	return sessions
}

func sessionKey(id string) string {
	return "session:" + id
}

// scheduleKey ключ расписания на дату: оборудование и залы этой даты
func scheduleKey(date time.Time) string {
	return "schedule:" + date.Format(domain.DateFormat)
}
