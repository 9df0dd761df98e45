package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// projectColumns is the list of columns to select for project queries.
const projectColumns = `id, customer_id, name, rate_cents, archived, created_at`

// projectRepo implements ProjectRepo over SQLite.
type projectRepo struct {
	db *sql.DB
}

func newProjectRepo(db *sql.DB) *projectRepo {
	return &projectRepo{db: db}
}

var _ ProjectRepo = (*projectRepo)(nil)

// scanProject scans a row into a Project.
func scanProject(scanner interface{ Scan(...any) error }) (*Project, error) {
	var p Project
	var createdAt int64
	err := scanner.Scan(&p.ID, &p.CustomerID, &p.Name, &p.RateCents, &p.Archived, &createdAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = time.Unix(createdAt, 0)
	return &p, nil
}

func (r *projectRepo) Upsert(ctx context.Context, p *Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, customer_id, name, rate_cents, archived, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			customer_id = excluded.customer_id,
			name = excluded.name,
			rate_cents = excluded.rate_cents,
			archived = excluded.archived`,
		p.ID, p.CustomerID, p.Name, p.RateCents, p.Archived, p.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert project: %w", err)
	}
	return nil
}

func (r *projectRepo) Get(ctx context.Context, id string) (*Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id,
	)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *projectRepo) List(ctx context.Context, includeArchived bool) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
