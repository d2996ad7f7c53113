package msgstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/milk9111/msgfall/api"
)

// SQLiteStore persists messages in a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath.
// If dbPath is empty, defaults to "./data/msgfall.db"
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/msgfall.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("msgstore: create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("msgstore: open %s: %w", dbPath, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("msgstore: ping %s: %w", dbPath, err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		message TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("msgstore: init schema: %w", err)
	}
	return nil
}

// List returns every message ordered by id. ULIDs sort by creation time.
func (s *SQLiteStore) List(ctx context.Context) ([]api.Message, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, message FROM messages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("msgstore: list: %w", err)
	}
	defer rows.Close()

	out := []api.Message{}
	for rows.Next() {
		var m api.Message
		if err := rows.Scan(&m.ID, &m.Text); err != nil {
			return nil, fmt.Errorf("msgstore: scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("msgstore: list: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Create(ctx context.Context, text string) (api.Message, error) {
	msg, err := newMessage(text)
	if err != nil {
		return api.Message{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, message, created_at)
		VALUES (?, ?, ?)
	`, msg.ID, msg.Text, time.Now().UTC())
	if err != nil {
		return api.Message{}, fmt.Errorf("msgstore: insert: %w", err)
	}
	return msg, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
