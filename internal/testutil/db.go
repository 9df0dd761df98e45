// Package testutil provides database fixtures shared by tests across
// packages. The builder writes through the same upsert path the edit
// commands use, so seeded data obeys the store's foreign keys.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stint/internal/store"
)

// NewTestDB opens an in-memory store with all migrations applied and
// closes it when the test finishes.
func NewTestDB(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.MemoryPath)
	require.NoError(t, err, "Failed to open test store")
	t.Cleanup(func() { _ = s.Close() })
	return s
}
