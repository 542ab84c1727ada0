package rooms

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func transitionFixture() (*Room, *HistoryEntry) {
	now := time.Now()
	room := &Room{
		ID:               uuid.New(),
		HotelID:          uuid.New(),
		Number:           "101",
		Status:           StatusCleaningCheckout,
		LastStatusChange: now,
	}
	entry := &HistoryEntry{
		ID:         uuid.New(),
		RoomID:     room.ID,
		HotelID:    room.HotelID,
		FromStatus: StatusCheckout,
		ToStatus:   StatusCleaningCheckout,
		ActingRole: RoleHousekeeper,
		RecordedAt: now,
	}
	return room, entry
}

func TestApplyTransitionCommitsStatusAndHistoryTogether(t *testing.T) {
	db, mock := newMockDB(t)
	room, entry := transitionFixture()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO room_history").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewRepository(db).ApplyTransition(context.Background(), room, entry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTransitionRejectsStaleStatus(t *testing.T) {
	db, mock := newMockDB(t)
	room, entry := transitionFixture()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := NewRepository(db).ApplyTransition(context.Background(), room, entry)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTransitionRollsBackWhenHistoryInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	room, entry := transitionFixture()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO room_history").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := NewRepository(db).ApplyTransition(context.Background(), room, entry)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteAssignmentMissingRoom(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("UPDATE rooms SET assigned_to").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewRepository(db).WriteAssignment(
		context.Background(), uuid.New(), uuid.New(), uuid.New(), time.Now())

	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoomNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM rooms").
		WillReturnError(sql.ErrNoRows)

	_, err := NewRepository(db).GetRoom(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrRoomNotFound)
}
