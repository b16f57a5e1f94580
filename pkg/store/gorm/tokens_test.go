package gorm

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fieldgate/fieldgate/pkg/store"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestIsRevoked(t *testing.T) {
	db, mock := newTestDB(t)
	tokens := NewTokenStore(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocations"`).
		WithArgs("jti-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	revoked, err := tokens.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocations"`).
		WithArgs("jti-2", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	revoked, err = tokens.IsRevoked(context.Background(), "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRevokedSurfacesStoreError(t *testing.T) {
	db, mock := newTestDB(t)
	tokens := NewTokenStore(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocations"`).
		WillReturnError(sql.ErrConnDone)

	_, err := tokens.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}

func TestRevokeDeduplicates(t *testing.T) {
	db, mock := newTestDB(t)
	tokens := NewTokenStore(db)

	rev := store.Revocation{JTI: "jti-1", Reason: "logout", RevokedAt: time.Now().UTC()}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "token_revocations" .* ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, tokens.Revoke(context.Background(), rev))

	// Second revocation hits the conflict clause and affects no rows.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "token_revocations" .* ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	require.NoError(t, tokens.Revoke(context.Background(), rev))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJTIsForSession(t *testing.T) {
	db, mock := newTestDB(t)
	tokens := NewTokenStore(db)

	mock.ExpectQuery(`SELECT "jti" FROM "issued_tokens"`).
		WithArgs("session-1", sqlmock.AnyArg(), "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"jti"}).AddRow("jti-1").AddRow("jti-2"))

	jtis, err := tokens.JTIsForSession(context.Background(), "session-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"jti-1", "jti-2"}, jtis)
}

func TestDeleteRevokedBefore(t *testing.T) {
	db, mock := newTestDB(t)
	tokens := NewTokenStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "token_revocations"`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	removed, err := tokens.DeleteRevokedBefore(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestFetchSessionNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	sessions := NewSessionStore(db)

	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	session, err := sessions.FetchSession(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, session)
}
