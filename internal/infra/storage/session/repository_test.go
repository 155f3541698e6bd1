package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

const testSessionID = "3f2b8c1e-6a4d-4f7e-9b1a-2c5d8e9f0a1b"

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), db, mock
}

func sessionRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(sessionColumns).AddRow(
		testSessionID, "Reformer", "Anna", "Room 1 - Downtown",
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "10:00:00", 60,
		2, 1, true, "closed", now, now,
	)
}

func TestRepository_GetByID_LoadsChildrenInOrder(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, name, .* FROM sessions WHERE id = \$1`).
		WithArgs(testSessionID).
		WillReturnRows(sessionRows(now))

	mock.ExpectQuery(`FROM session_members WHERE session_id IN \(\$1\) ORDER BY session_id, kind, position`).
		WithArgs(testSessionID).
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "kind", "id", "name", "email", "phone", "notes", "joined_at"}).
			AddRow(testSessionID, "participant", "p1", "Kate", "kate@x.io", nil, nil, now).
			AddRow(testSessionID, "participant", "p2", "Lena", "lena@x.io", "+100", nil, now).
			AddRow(testSessionID, "waitlist", "w1", "Mia", "mia@x.io", nil, "late", now))

	mock.ExpectQuery(`FROM session_equipment WHERE session_id IN \(\$1\)`).
		WithArgs(testSessionID).
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "equipment_type", "start_minute", "end_minute"}).
			AddRow(testSessionID, "laser", 0, 15).
			AddRow(testSessionID, "laser", 45, 60))

	s, err := repo.GetByID(context.Background(), testSessionID)
	require.NoError(t, err)

	assert.Equal(t, "Reformer", s.Name)
	assert.Equal(t, domain.StatusClosed, s.Status)
	assert.Equal(t, "10:00", s.StartTime.String())
	require.Len(t, s.Participants, 2)
	assert.Equal(t, "kate@x.io", s.Participants[0].Email)
	assert.Equal(t, ptr.Ptr("+100"), s.Participants[1].Phone)
	require.Len(t, s.Waitlist, 1)
	assert.Equal(t, ptr.Ptr("late"), s.Waitlist[0].Notes)
	assert.Equal(t, []domain.EquipmentSlot{{StartMinute: 0, EndMinute: 15}, {StartMinute: 45, EndMinute: 60}},
		s.EquipmentBookings[domain.EquipmentLaser])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`FROM sessions WHERE id = \$1`).
		WithArgs(testSessionID).
		WillReturnRows(sqlmock.NewRows(sessionColumns))

	_, err := repo.GetByID(context.Background(), testSessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksRowInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM sessions WHERE id = \$1 ORDER BY .* FOR UPDATE`).
		WithArgs(testSessionID).
		WillReturnRows(sessionRows(now))
	mock.ExpectQuery(`FROM session_members`).WillReturnRows(sqlmock.NewRows([]string{"session_id", "kind", "id", "name", "email", "phone", "notes", "joined_at"}))
	mock.ExpectQuery(`FROM session_equipment`).WillReturnRows(sqlmock.NewRows([]string{"session_id", "equipment_type", "start_minute", "end_minute"}))

	tx, err := dbmetrics.Wrap(db, nil, "test").BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), testSessionID)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_InsertsSessionAndChildren(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	s := &domain.Session{
		ID:              testSessionID,
		Name:            "Reformer",
		Trainer:         "Anna",
		Room:            "Room 1",
		Date:            time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		MaxSpots:        1,
		MaxWaitlist:     1,
		EnableWaitlist:  true,
		Status:          domain.StatusOpen,
		Participants:    []domain.Participant{{ID: "p1", Name: "Kate", Email: "kate@x.io", JoinedAt: now}},
		Waitlist:        []domain.Participant{{ID: "w1", Name: "Mia", Email: "mia@x.io", JoinedAt: now}},
		EquipmentBookings: domain.EquipmentBookings{
			domain.EquipmentChair: {{StartMinute: 15, EndMinute: 30}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(testSessionID, "Reformer", "Anna", "Room 1", "2025-03-10", sqlmock.AnyArg(), 60, 1, 1, true, sqlmock.AnyArg(), now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO session_members`).
		WithArgs(
			"p1", testSessionID, "participant", 0, "Kate", "kate@x.io", nil, nil, now,
			"w1", testSessionID, "waitlist", 0, "Mia", "mia@x.io", nil, nil, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO session_equipment`).
		WithArgs(testSessionID, sqlmock.AnyArg(), 15, 30).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Create(context.Background(), s)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE sessions SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Session{ID: testSessionID, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_ReplacesChildren(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE sessions SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM session_members WHERE session_id = \$1`).WithArgs(testSessionID).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM session_equipment WHERE session_id = \$1`).WithArgs(testSessionID).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Session{ID: testSessionID, StartTime: "10:00"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1`).WithArgs(testSessionID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1`).WithArgs(testSessionID).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), testSessionID))
	assert.ErrorIs(t, repo.Delete(context.Background(), testSessionID), ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
