package audit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	store := NewStoreWithDB(db)
	defer store.Close()

	mock.ExpectExec(`INSERT INTO messages`).
		WithArgs(
			FacilityAuthPriv,
			int(SeverityInfo),
			sqlmock.AnyArg(), // timestamp
			sqlmock.AnyArg(), // hostname
			"fieldgate",
			sqlmock.AnyArg(), // procid
			"check",
			sqlmock.AnyArg(), // sdata json
			sqlmock.AnyArg(), // message
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Save(CheckEvent{
		UserID:             "user-1",
		RequiredPermission: "DEVICES.READ",
		Allowed:            true,
	})
	if err != nil {
		t.Errorf("save failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStoreSaveNilDB(t *testing.T) {
	store := &Store{}
	if err := store.Save(TokenRevokedEvent{JTI: "jti-1"}); err != nil {
		t.Errorf("nil-db save should be a no-op, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("nil-db close should be a no-op, got %v", err)
	}
}

func TestNewStoreWithoutURL(t *testing.T) {
	t.Setenv("AUDIT_DATABASE_URL", "")
	store, err := NewStore()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if store != nil {
		t.Errorf("expected nil store when AUDIT_DATABASE_URL unset")
	}
}
