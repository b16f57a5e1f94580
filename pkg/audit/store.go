package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Store persists audit events to a dedicated postgres database, kept
// separate from the application database so retention policies differ.
type Store struct {
	db *sql.DB
}

// NewStore opens the database named by AUDIT_DATABASE_URL. An unset
// variable means no persistence; the store comes back nil without
// error.
func NewStore() (*Store, error) {
	url := os.Getenv("AUDIT_DATABASE_URL")
	if url == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing connection, for sqlmock tests.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const insertMessage = `
	INSERT INTO messages (facility, severity, timestamp, hostname, appname, procid, msgid, sdata, message)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Save writes one event row. The sdata column holds the structured
// data as jsonb so collectors can query individual parameters.
func (s *Store) Save(event Event) error {
	if s.db == nil {
		return nil
	}

	sdata, err := json.Marshal(event.StructuredData())
	if err != nil {
		return fmt.Errorf("encode structured data: %w", err)
	}

	hostname, _ := os.Hostname()
	_, err = s.db.Exec(insertMessage,
		event.Facility(),
		int(event.Severity()),
		time.Now().UTC(),
		hostname,
		"fieldgate",
		os.Getpid(),
		event.MessageID(),
		sdata,
		event.Message(),
	)
	return err
}

// DB exposes the underlying connection, for tests.
func (s *Store) DB() *sql.DB {
	return s.db
}
