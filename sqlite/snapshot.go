package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/offenesjena/vorhaben"
)

// Compile-time interface verification.
var _ vorhaben.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements vorhaben.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db, Now: time.Now}
}

// HashRecord computes the xxHash of a record's JSON encoding as a hex string.
func HashRecord(rec *vorhaben.PageRecord) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}

// SaveRun stores records as a new run and reports the difference to the
// previous run. The first run reports every record as added.
func (s *SnapshotService) SaveRun(ctx context.Context, records []*vorhaben.PageRecord) (*vorhaben.RunDiff, error) {
	current := make(map[string]string, len(records))
	for _, rec := range records {
		if rec == nil || rec.ID == "" {
			return nil, vorhaben.Errorf(vorhaben.EINVALID, "record id required")
		}
		hash, err := HashRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("hash record %s: %w", rec.ID, err)
		}
		current[rec.ID] = hash
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var prevID string
	var prevPosition int
	err = tx.QueryRowContext(ctx, `
		SELECT id, position FROM runs ORDER BY position DESC LIMIT 1
	`).Scan(&prevID, &prevPosition)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	previous, err := loadHashes(ctx, tx, prevID)
	if err != nil {
		return nil, err
	}

	diff := &vorhaben.RunDiff{
		RunID:    uuid.New().String(),
		Previous: prevID,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, position, record_count, created_at)
		VALUES (?, ?, ?, ?)
	`, diff.RunID, prevPosition+1, len(current), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_records (run_id, record_id, content_hash) VALUES (?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for id, hash := range current {
		if _, err := stmt.ExecContext(ctx, diff.RunID, id, hash); err != nil {
			return nil, err
		}

		prev, ok := previous[id]
		switch {
		case !ok:
			diff.Added = append(diff.Added, id)
		case prev != hash:
			diff.Changed = append(diff.Changed, id)
		default:
			diff.Unchanged++
		}
	}
	for id := range previous {
		if _, ok := current[id]; !ok {
			diff.Removed = append(diff.Removed, id)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Changed)
	sort.Strings(diff.Removed)
	return diff, nil
}

// loadHashes returns the record hashes of a run keyed by record id.
func loadHashes(ctx context.Context, tx *sql.Tx, runID string) (map[string]string, error) {
	hashes := make(map[string]string)
	if runID == "" {
		return hashes, nil
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT record_id, content_hash FROM run_records WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			return nil, err
		}
		hashes[id] = hash
	}
	return hashes, rows.Err()
}

// FindRuns retrieves stored runs, newest first.
func (s *SnapshotService) FindRuns(ctx context.Context, filter vorhaben.RunFilter) ([]*vorhaben.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, record_count, created_at FROM runs ORDER BY position DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*vorhaben.Run
	for rows.Next() {
		var run vorhaben.Run
		var createdAt string

		if err := rows.Scan(&run.ID, &run.RecordCount, &createdAt); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func (s *SnapshotService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
