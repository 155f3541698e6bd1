package medical

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

const testRecordID = "0c7c3c1a-1f0e-4b7a-8d59-2b7f5e0f6a11"

func TestRepository_CreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	payload := json.RawMessage(`{"injuries":["knee"]}`)

	mock.ExpectExec(`INSERT INTO medical_records`).
		WithArgs(testRecordID, "cust-1", "sess-1", []byte(payload), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT id, participant_id, session_id, payload, created_at FROM medical_records WHERE id = \$1`).
		WithArgs(testRecordID).
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(testRecordID, "cust-1", "sess-1", []byte(payload), now))

	err = repo.Create(context.Background(), &domain.MedicalRecord{
		ID: testRecordID, ParticipantID: "cust-1", SessionID: "sess-1", Payload: payload, CreatedAt: now,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), testRecordID)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(got.Payload))
	assert.Equal(t, "sess-1", got.SessionID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`FROM medical_records WHERE id = \$1`).
		WithArgs(testRecordID).
		WillReturnRows(sqlmock.NewRows(recordColumns))

	_, err = repo.GetByID(context.Background(), testRecordID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByParticipantID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM medical_records WHERE participant_id = \$1 ORDER BY created_at, id`).
		WithArgs("cust-1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("a", "cust-1", "s1", []byte(`{}`), now).
			AddRow("b", "cust-1", "s2", []byte(`{"x":1}`), now))

	records, err := repo.GetByParticipantID(context.Background(), "cust-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "s2", records[1].SessionID)

	require.NoError(t, mock.ExpectationsWereMet())
}
