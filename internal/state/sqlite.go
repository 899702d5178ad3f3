package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// snapshotKeep is how many snapshots are retained; older rows are pruned on
// every save.
const snapshotKeep = 20

// SQLiteStore implements Store on SQLite via the CGO-free modernc driver.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the state database at path and runs pending
// migrations. Use ":memory:" for an in-memory database.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping state database: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection. The caller is responsible for
// migrations; tests use this with mocked connections.
func NewWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot implements Store.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, tree nav.Tree) error {
	if tree == nil {
		tree = nav.Tree{}
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, tree_json, taken_at) VALUES (?, ?, ?)`,
		uuid.New().String(), string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN
		   (SELECT id FROM snapshots ORDER BY taken_at DESC LIMIT ?)`, snapshotKeep)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return nil
}

// LatestSnapshot implements Store.
func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (nav.Tree, time.Time, error) {
	var (
		data    string
		takenAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT tree_json, taken_at FROM snapshots ORDER BY taken_at DESC LIMIT 1`,
	).Scan(&data, &takenAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var tree nav.Tree
	if err := json.Unmarshal([]byte(data), &tree); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, takenAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse snapshot timestamp: %w", err)
	}
	return tree, ts, nil
}

// RecordTrash implements Store.
func (s *SQLiteStore) RecordTrash(ctx context.Context, e TrashEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.TrashedAt.IsZero() {
		e.TrashedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trash_entries (id, original_path, trash_path, kind, trashed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.OriginalPath, e.TrashPath, e.Kind, e.TrashedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record trash entry: %w", err)
	}
	return nil
}

// MarkRestored implements Store.
func (s *SQLiteStore) MarkRestored(ctx context.Context, trashPath string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE trash_entries SET restored_at = ? WHERE trash_path = ? AND restored_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339Nano), trashPath)
	if err != nil {
		return fmt.Errorf("failed to mark trash entry restored: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no unrestored trash entry for %s", trashPath)
	}
	return nil
}

// ListTrash implements Store.
func (s *SQLiteStore) ListTrash(ctx context.Context) ([]TrashEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_path, trash_path, kind, trashed_at
		 FROM trash_entries WHERE restored_at IS NULL ORDER BY trashed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list trash entries: %w", err)
	}
	defer rows.Close()

	var out []TrashEntry
	for rows.Next() {
		var (
			e         TrashEntry
			trashedAt string
		)
		if err := rows.Scan(&e.ID, &e.OriginalPath, &e.TrashPath, &e.Kind, &trashedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trash entry: %w", err)
		}
		if e.TrashedAt, err = time.Parse(time.RFC3339Nano, trashedAt); err != nil {
			return nil, fmt.Errorf("failed to parse trash timestamp: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
