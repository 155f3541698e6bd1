package medical

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var recordColumns = []string{"id", "participant_id", "session_id", "payload", "created_at"}

// Repository репозиторий медицинских анкет (payload хранится в JSONB)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория анкет
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет анкету. ID и CreatedAt задаёт вызывающий
func (r *Repository) Create(ctx context.Context, record *domain.MedicalRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("medical_records").
		Columns(recordColumns...).
		Values(record.ID, record.ParticipantID, record.SessionID, []byte(record.Payload), record.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает анкету по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.MedicalRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRecordNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recordColumns...).
		From("medical_records").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.MedicalRecord
	var payload []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.ParticipantID,
		&record.SessionID,
		&payload,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan record: %v", ErrScanRow, err)
	}

	record.Payload = payload
	return &record, nil
}

// GetByParticipantID возвращает анкеты участника, от старых к новым
func (r *Repository) GetByParticipantID(ctx context.Context, participantID string) ([]*domain.MedicalRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recordColumns...).
		From("medical_records").
		Where(squirrel.Eq{"participant_id": participantID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipantID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipantID - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.MedicalRecord, 0)
	for rows.Next() {
		var record domain.MedicalRecord
		var payload []byte
		if err := rows.Scan(&record.ID, &record.ParticipantID, &record.SessionID, &payload, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByParticipantID - scan record: %v", ErrScanRow, err)
		}
		record.Payload = payload
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByParticipantID - iterate records: %v", ErrScanRow, err)
	}

	return records, nil
}
