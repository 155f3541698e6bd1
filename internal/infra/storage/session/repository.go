package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

const (
	kindParticipant = "participant"
	kindWaitlist    = "waitlist"
)

var sessionColumns = []string{
	"id",
	"name",
	"trainer",
	"room",
	"session_date",
	"start_time",
	"duration_minutes",
	"max_spots",
	"max_waitlist",
	"enable_waitlist",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий сессий
// Сессия хранится строкой sessions плюс дочерние session_members и session_equipment
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все сессии, упорядоченные по дате и времени начала
func (r *Repository) List(ctx context.Context) ([]*domain.Session, error) {
	return r.selectSessions(ctx, "List", nil)
}

// ListByDate возвращает сессии на календарную дату
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка оборудования
// видела согласованное состояние до коммита
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Session, error) {
	return r.selectSessions(ctx, "ListByDate", squirrel.Eq{"session_date": date.Format(domain.DateFormat)})
}

// GetByID получает сессию по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	sessions, err := r.selectSessions(ctx, "GetByID", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, ErrSessionNotFound
	}
	return sessions[0], nil
}

// Create сохраняет новую сессию вместе с участниками и оборудованием
// ID и временные метки задаёт вызывающий
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(sessionColumns...).
		Values(
			s.ID,
			s.Name,
			s.Trainer,
			s.Room,
			s.Date.Format(domain.DateFormat),
			s.StartTime,
			s.DurationMinutes,
			s.MaxSpots,
			s.MaxWaitlist,
			s.EnableWaitlist,
			s.Status,
			s.CreatedAt,
			s.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertChildren(ctx, executor, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Update перезаписывает сессию целиком (last-write-wins)
// Дочерние записи удаляются и вставляются заново, чтобы position отражал текущий порядок
func (r *Repository) Update(ctx context.Context, s *domain.Session) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("name", s.Name).
		Set("trainer", s.Trainer).
		Set("room", s.Room).
		Set("session_date", s.Date.Format(domain.DateFormat)).
		Set("start_time", s.StartTime).
		Set("duration_minutes", s.DurationMinutes).
		Set("max_spots", s.MaxSpots).
		Set("max_waitlist", s.MaxWaitlist).
		Set("enable_waitlist", s.EnableWaitlist).
		Set("status", s.Status).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	for _, table := range []string{"session_members", "session_equipment"} {
		query, args, err := psqlbuilder.Delete(table).Where(squirrel.Eq{"session_id": s.ID}).ToSql()
		if err != nil {
			return fmt.Errorf("%w: Update - build delete %s query: %v", ErrBuildQuery, table, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Update - delete %s: %v", ErrExecQuery, table, err)
		}
	}

	return r.insertChildren(ctx, executor, s)
}

// Delete удаляет сессию. Дочерние записи удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrSessionNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *Repository) selectSessions(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		OrderBy("session_date", "start_time", "created_at")
	if where != nil {
		builder = builder.Where(where)
	}
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	byID := make(map[string]*domain.Session)
	for rows.Next() {
		var s domain.Session
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Trainer,
			&s.Room,
			&s.Date,
			&s.StartTime,
			&s.DurationMinutes,
			&s.MaxSpots,
			&s.MaxWaitlist,
			&s.EnableWaitlist,
			&s.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan session: %v", ErrScanRow, op, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		s.Participants = []domain.Participant{}
		s.Waitlist = []domain.Participant{}
		s.EquipmentBookings = domain.EquipmentBookings{}

		sessions = append(sessions, &s)
		byID[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate sessions: %v", ErrScanRow, op, err)
	}

	if len(sessions) == 0 {
		return sessions, nil
	}

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}

	if err := r.loadMembers(ctx, executor, op, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadEquipment(ctx, executor, op, ids, byID); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *Repository) loadMembers(ctx context.Context, executor DBExecutor, op string, ids []string, byID map[string]*domain.Session) error {
	query, args, err := psqlbuilder.Select(
		"session_id",
		"kind",
		"id",
		"name",
		"email",
		"phone",
		"notes",
		"joined_at",
	).
		From("session_members").
		Where(squirrel.Eq{"session_id": ids}).
		OrderBy("session_id", "kind", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build members query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - select members: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID, kind string
		var p domain.Participant

		if err := rows.Scan(&sessionID, &kind, &p.ID, &p.Name, &p.Email, &p.Phone, &p.Notes, &p.JoinedAt); err != nil {
			return fmt.Errorf("%w: %s - scan member: %v", ErrScanRow, op, err)
		}

		s, ok := byID[sessionID]
		if !ok {
			continue
		}
		switch kind {
		case kindParticipant:
			s.Participants = append(s.Participants, p)
		case kindWaitlist:
			s.Waitlist = append(s.Waitlist, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s - iterate members: %v", ErrScanRow, op, err)
	}

	return nil
}

func (r *Repository) loadEquipment(ctx context.Context, executor DBExecutor, op string, ids []string, byID map[string]*domain.Session) error {
	query, args, err := psqlbuilder.Select(
		"session_id",
		"equipment_type",
		"start_minute",
		"end_minute",
	).
		From("session_equipment").
		Where(squirrel.Eq{"session_id": ids}).
		OrderBy("session_id", "equipment_type", "start_minute").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build equipment query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - select equipment: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID string
		var equipment domain.EquipmentType
		var slot domain.EquipmentSlot

		if err := rows.Scan(&sessionID, &equipment, &slot.StartMinute, &slot.EndMinute); err != nil {
			return fmt.Errorf("%w: %s - scan equipment: %v", ErrScanRow, op, err)
		}

		if s, ok := byID[sessionID]; ok {
			s.EquipmentBookings[equipment] = append(s.EquipmentBookings[equipment], slot)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s - iterate equipment: %v", ErrScanRow, op, err)
	}

	return nil
}

func (r *Repository) insertChildren(ctx context.Context, executor DBExecutor, s *domain.Session) error {
	if len(s.Participants)+len(s.Waitlist) > 0 {
		builder := psqlbuilder.Insert("session_members").
			Columns("id", "session_id", "kind", "position", "name", "email", "phone", "notes", "joined_at")

		for i, p := range s.Participants {
			builder = builder.Values(p.ID, s.ID, kindParticipant, i, p.Name, p.Email, p.Phone, p.Notes, p.JoinedAt)
		}
		for i, p := range s.Waitlist {
			builder = builder.Values(p.ID, s.ID, kindWaitlist, i, p.Name, p.Email, p.Phone, p.Notes, p.JoinedAt)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("%w: build members insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: insert members: %v", ErrExecQuery, err)
		}
	}

	if s.EquipmentBookings.IsEmpty() {
		return nil
	}

	builder := psqlbuilder.Insert("session_equipment").
		Columns("session_id", "equipment_type", "start_minute", "end_minute")
	for _, equipment := range s.EquipmentBookings.Types() {
		for _, slot := range s.EquipmentBookings[equipment] {
			builder = builder.Values(s.ID, equipment, slot.StartMinute, slot.EndMinute)
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: build equipment insert: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insert equipment: %v", ErrExecQuery, err)
	}

	return nil
}
