package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// customerColumns is the list of columns to select for customer queries.
const customerColumns = `id, name, archived, created_at`

// customerRepo implements CustomerRepo over SQLite.
type customerRepo struct {
	db *sql.DB
}

func newCustomerRepo(db *sql.DB) *customerRepo {
	return &customerRepo{db: db}
}

var _ CustomerRepo = (*customerRepo)(nil)

// scanCustomer scans a row into a Customer.
func scanCustomer(scanner interface{ Scan(...any) error }) (*Customer, error) {
	var c Customer
	var createdAt int64
	err := scanner.Scan(&c.ID, &c.Name, &c.Archived, &createdAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = time.Unix(createdAt, 0)
	return &c, nil
}

func (r *customerRepo) Upsert(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, archived, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			archived = excluded.archived`,
		c.ID, c.Name, c.Archived, c.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}

func (r *customerRepo) Get(ctx context.Context, id string) (*Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id,
	)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

func (r *customerRepo) List(ctx context.Context, includeArchived bool) ([]*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var customers []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

func (r *customerRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
