// package repositories provides persistence layer implementations for client state.
//
// State is stored as JSON values in a SQLite key-value table.
package repositories

import (
	"database/sql"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/popcorn/internal/shared"
)

// Store bundles the open database with the repositories built on it.
type Store struct {
	DB      *sql.DB
	KV      *KVStore
	Watched *WatchedRepository
}

// Open opens the configured database, runs migrations and wires the repositories.
func Open(cfg shared.DatabaseConfig, logger *log.Logger) (*Store, error) {
	db, err := shared.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return NewStore(db, logger), nil
}

// NewStore wires the repositories over an already migrated database.
func NewStore(db *sql.DB, logger *log.Logger) *Store {
	kv := NewKVStore(db)
	return &Store{DB: db, KV: kv, Watched: NewWatchedRepository(kv, logger)}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}
