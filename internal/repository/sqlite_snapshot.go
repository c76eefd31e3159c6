package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tasktracker/internal/db"
	"github.com/google/uuid"
)

// SQLiteSnapshotRepo implements SnapshotRepo using the snapshots table.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

func (r *SQLiteSnapshotRepo) Create(ctx context.Context, s *Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.CreatedAt = nowUTC()

	query := `INSERT INTO snapshots (id, revision, created_at, record_count, body)
		VALUES (?, (SELECT COALESCE(MAX(revision), 0) + 1 FROM snapshots), ?, ?, ?)
		RETURNING revision`
	err := r.db.QueryRowContext(ctx, query,
		s.ID,
		s.CreatedAt.Format(timestampLayout),
		s.RecordCount,
		string(s.Body),
	).Scan(&s.Revision)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query := `SELECT id, revision, created_at, record_count, body
		FROM snapshots ORDER BY revision DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query), "latest snapshot")
}

func (r *SQLiteSnapshotRepo) scanOne(row *sql.Row, what string) (*Snapshot, error) {
	var (
		s         Snapshot
		createdAt string
		body      string
	)
	if err := row.Scan(&s.ID, &s.Revision, &createdAt, &s.RecordCount, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning %s: %w", what, err)
	}
	s.CreatedAt = parseTimestamp(createdAt)
	s.Body = []byte(body)
	return &s, nil
}

func (r *SQLiteSnapshotRepo) List(ctx context.Context) ([]*Snapshot, error) {
	query := `SELECT id, revision, created_at, record_count
		FROM snapshots ORDER BY revision DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []*Snapshot
	for rows.Next() {
		var (
			s         Snapshot
			createdAt string
		)
		if err := rows.Scan(&s.ID, &s.Revision, &createdAt, &s.RecordCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		s.CreatedAt = parseTimestamp(createdAt)
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return out, nil
}

func (r *SQLiteSnapshotRepo) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("pruning snapshots: negative keep %d", keep)
	}
	query := `DELETE FROM snapshots WHERE revision NOT IN (
		SELECT revision FROM snapshots ORDER BY revision DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned snapshots: %w", err)
	}
	return int(n), nil
}
