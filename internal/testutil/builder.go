package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stint/internal/store"
)

// Builder accumulates test data and inserts it in the correct order.
type Builder struct {
	t          *testing.T
	s          *store.Store
	customers  []customerData
	projects   []projectData
	activities []activityData
	entries    []entryData
}

// NewBuilder creates a builder for the given test store.
func NewBuilder(t *testing.T, s *store.Store) *Builder {
	t.Helper()
	return &Builder{t: t, s: s}
}

// WithCustomer adds a customer with optional configuration.
func (b *Builder) WithCustomer(id string, opts ...CustomerOption) *Builder {
	customer := defaultCustomer(id)
	for _, opt := range opts {
		opt(&customer)
	}
	b.customers = append(b.customers, customer)
	return b
}

// WithProject adds a project under the given customer.
func (b *Builder) WithProject(id, customerID string, opts ...ProjectOption) *Builder {
	project := defaultProject(id, customerID)
	for _, opt := range opts {
		opt(&project)
	}
	b.projects = append(b.projects, project)
	return b
}

// WithActivity adds an activity with optional configuration.
func (b *Builder) WithActivity(id string, opts ...ActivityOption) *Builder {
	activity := defaultActivity(id)
	for _, opt := range opts {
		opt(&activity)
	}
	b.activities = append(b.activities, activity)
	return b
}

// WithEntry adds an entry for the given project and activity.
func (b *Builder) WithEntry(id, projectID, activityID string, day store.Day, opts ...EntryOption) *Builder {
	entry := defaultEntry(id, projectID, activityID, day)
	for _, opt := range opts {
		opt(&entry)
	}
	b.entries = append(b.entries, entry)
	return b
}

// Build inserts all accumulated data into the store.
func (b *Builder) Build() {
	b.t.Helper()
	// Insert in foreign key order: customers → projects → activities → entries
	ctx := context.Background()
	for _, c := range b.customers {
		err := b.s.Customers().Upsert(ctx, &store.Customer{
			ID:        c.id,
			Name:      c.name,
			Archived:  c.archived,
			CreatedAt: c.createdAt,
		})
		require.NoError(b.t, err)
	}
	for _, p := range b.projects {
		err := b.s.Projects().Upsert(ctx, &store.Project{
			ID:         p.id,
			CustomerID: p.customerID,
			Name:       p.name,
			RateCents:  p.rateCents,
			Archived:   p.archived,
			CreatedAt:  p.createdAt,
		})
		require.NoError(b.t, err)
	}
	for _, a := range b.activities {
		err := b.s.Activities().Upsert(ctx, &store.Activity{
			ID:        a.id,
			Name:      a.name,
			Archived:  a.archived,
			CreatedAt: a.createdAt,
		})
		require.NoError(b.t, err)
	}
	for _, e := range b.entries {
		err := b.s.Entries().Upsert(ctx, &store.Entry{
			ID:         e.id,
			Day:        e.day,
			ProjectID:  e.projectID,
			ActivityID: e.activityID,
			Minutes:    e.minutes,
			Note:       e.note,
			CreatedAt:  e.createdAt,
			UpdatedAt:  e.createdAt,
		})
		require.NoError(b.t, err)
	}
}
