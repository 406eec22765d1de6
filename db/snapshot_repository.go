// ABOUTME: SQLite persistence backend for the state snapshot
// ABOUTME: Each save replaces the single snapshot row and appends to the write log

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/opslog/store"
)

// SnapshotWrite is one entry of the write log.
type SnapshotWrite struct {
	WrittenAt time.Time
	SizeBytes int
}

// SnapshotStatus summarizes what is stored.
type SnapshotStatus struct {
	HasSnapshot bool
	UpdatedAt   time.Time
	SizeBytes   int
	Writes      int
}

// SnapshotRepository implements store.Backend on SQLite.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

var _ store.Backend = (*SnapshotRepository)(nil)

// Load returns the stored snapshot, or store.ErrNoSnapshot.
func (r *SnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM state_snapshot WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return data, nil
}

// Save replaces the snapshot inside a transaction.
func (r *SnapshotRepository) Save(ctx context.Context, data []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO state_snapshot (id, data, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, data, now)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot_log (written_at, size_bytes) VALUES (?, ?)`, now, len(data)); err != nil {
		return fmt.Errorf("failed to log snapshot write: %w", err)
	}

	return tx.Commit()
}

// Status reports the current snapshot and how many writes have been logged.
func (r *SnapshotRepository) Status(ctx context.Context) (*SnapshotStatus, error) {
	var status SnapshotStatus
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot_log`).Scan(&status.Writes); err != nil {
		return nil, fmt.Errorf("failed to count snapshot writes: %w", err)
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT updated_at, length(data) FROM state_snapshot WHERE id = 1
	`).Scan(&status.UpdatedAt, &status.SizeBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return &status, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot status: %w", err)
	}
	status.HasSnapshot = true
	return &status, nil
}

// History returns the most recent writes, newest first.
func (r *SnapshotRepository) History(ctx context.Context, limit int) ([]SnapshotWrite, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT written_at, size_bytes FROM snapshot_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot writes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var writes []SnapshotWrite
	for rows.Next() {
		var w SnapshotWrite
		if err := rows.Scan(&w.WrittenAt, &w.SizeBytes); err != nil {
			return nil, err
		}
		writes = append(writes, w)
	}
	return writes, rows.Err()
}

// Wipe deletes the snapshot and its write log.
func (r *SnapshotRepository) Wipe(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{`DELETE FROM state_snapshot`, `DELETE FROM snapshot_log`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to wipe snapshot: %w", err)
		}
	}
	return tx.Commit()
}
