package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEntryMiss(t *testing.T) {
	db, mock := newTestDB(t)
	cache := NewCacheStore(db)

	mock.ExpectQuery(`SELECT \* FROM "permission_cache"`).
		WithArgs("user-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	entry, err := cache.GetEntry(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGetEntryHit(t *testing.T) {
	db, mock := newTestDB(t)
	cache := NewCacheStore(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "permission_cache"`).
		WithArgs("user-1", 1).
		WillReturnRows(sqlmock.
			NewRows([]string{"user_id", "payload", "version", "computed_at", "expires_at"}).
			AddRow("user-1", `[]`, int64(7), now, now.Add(time.Minute)))

	entry, err := cache.GetEntry(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(7), entry.Version)
	assert.Equal(t, []byte(`[]`), entry.Payload)
}

func TestDeleteExpired(t *testing.T) {
	db, mock := newTestDB(t)
	cache := NewCacheStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "permission_cache"`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	removed, err := cache.DeleteExpired(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}
