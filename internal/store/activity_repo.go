package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// activityColumns is the list of columns to select for activity queries.
const activityColumns = `id, name, archived, created_at`

// activityRepo implements ActivityRepo over SQLite.
type activityRepo struct {
	db *sql.DB
}

func newActivityRepo(db *sql.DB) *activityRepo {
	return &activityRepo{db: db}
}

var _ ActivityRepo = (*activityRepo)(nil)

// scanActivity scans a row into an Activity.
func scanActivity(scanner interface{ Scan(...any) error }) (*Activity, error) {
	var a Activity
	var createdAt int64
	err := scanner.Scan(&a.ID, &a.Name, &a.Archived, &createdAt)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = time.Unix(createdAt, 0)
	return &a, nil
}

func (r *activityRepo) Upsert(ctx context.Context, a *Activity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (id, name, archived, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			archived = excluded.archived`,
		a.ID, a.Name, a.Archived, a.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert activity: %w", err)
	}
	return nil
}

func (r *activityRepo) Get(ctx context.Context, id string) (*Activity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = ?`, id,
	)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

func (r *activityRepo) List(ctx context.Context, includeArchived bool) ([]*Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var activities []*Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return activities, nil
}

func (r *activityRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrActivityNotFound
	}
	return nil
}
