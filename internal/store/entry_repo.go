package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// entryColumns is the list of columns to select for entry queries.
const entryColumns = `id, day, project_id, activity_id, minutes, note, created_at, updated_at`

// entryRepo implements EntryRepo over SQLite.
type entryRepo struct {
	db *sql.DB
}

func newEntryRepo(db *sql.DB) *entryRepo {
	return &entryRepo{db: db}
}

var _ EntryRepo = (*entryRepo)(nil)

// scanEntry scans a row into an Entry.
func scanEntry(scanner interface{ Scan(...any) error }) (*Entry, error) {
	var e Entry
	var day string
	var createdAt, updatedAt int64
	err := scanner.Scan(&e.ID, &day, &e.ProjectID, &e.ActivityID, &e.Minutes, &e.Note, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	e.Day = Day(day)
	e.CreatedAt = time.Unix(createdAt, 0)
	e.UpdatedAt = time.Unix(updatedAt, 0)
	return &e, nil
}

func (r *entryRepo) Upsert(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (id, day, project_id, activity_id, minutes, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			day = excluded.day,
			project_id = excluded.project_id,
			activity_id = excluded.activity_id,
			minutes = excluded.minutes,
			note = excluded.note,
			updated_at = excluded.updated_at`,
		e.ID, string(e.Day), e.ProjectID, e.ActivityID, e.Minutes, e.Note,
		e.CreatedAt.Unix(), e.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

func (r *entryRepo) Get(ctx context.Context, id string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

func (r *entryRepo) ListRange(ctx context.Context, from, to Day) ([]*Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE day BETWEEN ? AND ? ORDER BY day, created_at`,
		string(from), string(to),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

func (r *entryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *entryRepo) SumByProject(ctx context.Context, from, to Day, projectID string) ([]ReportRow, error) {
	query := `SELECT p.id, p.name, COALESCE(SUM(e.minutes), 0) AS total
		FROM entries e
		JOIN projects p ON p.id = e.project_id
		WHERE e.day BETWEEN ? AND ?`
	args := []any{string(from), string(to)}
	if projectID != "" {
		query += ` AND e.project_id = ?`
		args = append(args, projectID)
	}
	query += ` GROUP BY p.id, p.name ORDER BY total DESC, p.name`

	return r.sumRows(ctx, query, args)
}

func (r *entryRepo) SumByActivity(ctx context.Context, from, to Day, projectID string) ([]ReportRow, error) {
	query := `SELECT a.id, a.name, COALESCE(SUM(e.minutes), 0) AS total
		FROM entries e
		JOIN activities a ON a.id = e.activity_id
		WHERE e.day BETWEEN ? AND ?`
	args := []any{string(from), string(to)}
	if projectID != "" {
		query += ` AND e.project_id = ?`
		args = append(args, projectID)
	}
	query += ` GROUP BY a.id, a.name ORDER BY total DESC, a.name`

	return r.sumRows(ctx, query, args)
}

func (r *entryRepo) sumRows(ctx context.Context, query string, args []any) ([]ReportRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var report []ReportRow
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}
	return report, nil
}
