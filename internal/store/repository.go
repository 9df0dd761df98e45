package store

import "context"

// CustomerRepo defines persistence for Customer rows.
//
// Upsert writes the full row keyed by id: an existing row is replaced,
// a missing one inserted. Command producers rely on this so re-running
// a creation (the redo path) cannot duplicate a row.
type CustomerRepo interface {
	// Upsert inserts or fully updates the customer keyed by its id.
	Upsert(ctx context.Context, c *Customer) error

	// Get retrieves a customer by id.
	// Returns ErrCustomerNotFound if no matching row exists.
	Get(ctx context.Context, id string) (*Customer, error)

	// List retrieves customers ordered by name. Archived customers are
	// excluded unless includeArchived is set.
	List(ctx context.Context, includeArchived bool) ([]*Customer, error)

	// Delete removes the customer row.
	// Returns ErrCustomerNotFound if no matching row exists.
	Delete(ctx context.Context, id string) error
}

// ProjectRepo defines persistence for Project rows.
type ProjectRepo interface {
	// Upsert inserts or fully updates the project keyed by its id.
	Upsert(ctx context.Context, p *Project) error

	// Get retrieves a project by id.
	// Returns ErrProjectNotFound if no matching row exists.
	Get(ctx context.Context, id string) (*Project, error)

	// List retrieves projects ordered by name. Archived projects are
	// excluded unless includeArchived is set.
	List(ctx context.Context, includeArchived bool) ([]*Project, error)

	// Delete removes the project row.
	// Returns ErrProjectNotFound if no matching row exists.
	Delete(ctx context.Context, id string) error
}

// ActivityRepo defines persistence for Activity rows.
type ActivityRepo interface {
	// Upsert inserts or fully updates the activity keyed by its id.
	Upsert(ctx context.Context, a *Activity) error

	// Get retrieves an activity by id.
	// Returns ErrActivityNotFound if no matching row exists.
	Get(ctx context.Context, id string) (*Activity, error)

	// List retrieves activities ordered by name. Archived activities
	// are excluded unless includeArchived is set.
	List(ctx context.Context, includeArchived bool) ([]*Activity, error)

	// Delete removes the activity row.
	// Returns ErrActivityNotFound if no matching row exists.
	Delete(ctx context.Context, id string) error
}

// EntryRepo defines persistence for Entry rows plus the aggregate
// queries the report views run.
type EntryRepo interface {
	// Upsert inserts or fully updates the entry keyed by its id. The
	// created_at of an existing row is preserved.
	Upsert(ctx context.Context, e *Entry) error

	// Get retrieves an entry by id.
	// Returns ErrEntryNotFound if no matching row exists.
	Get(ctx context.Context, id string) (*Entry, error)

	// ListRange retrieves entries whose day falls within [from, to],
	// ordered by day then creation time.
	ListRange(ctx context.Context, from, to Day) ([]*Entry, error)

	// Delete removes the entry row.
	// Returns ErrEntryNotFound if no matching row exists.
	Delete(ctx context.Context, id string) error

	// SumByProject aggregates minutes per project over [from, to],
	// ordered by total descending. A non-empty projectID narrows the
	// aggregation to that project.
	SumByProject(ctx context.Context, from, to Day, projectID string) ([]ReportRow, error)

	// SumByActivity aggregates minutes per activity over [from, to],
	// ordered by total descending. A non-empty projectID narrows the
	// aggregation to entries of that project.
	SumByActivity(ctx context.Context, from, to Day, projectID string) ([]ReportRow, error)
}
