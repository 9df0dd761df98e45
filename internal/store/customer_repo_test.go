package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepo_Upsert_Insert(t *testing.T) {
	s := setupTestStore(t)

	now := time.Now()
	customer := &Customer{ID: uuid.NewString(), Name: "Acme", CreatedAt: now}
	err := s.Customers().Upsert(context.Background(), customer)
	require.NoError(t, err, "Upsert should succeed for new customer")

	found, err := s.Customers().Get(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Equal(t, customer.ID, found.ID)
	require.Equal(t, "Acme", found.Name)
	require.False(t, found.Archived)
	require.WithinDuration(t, now, found.CreatedAt, time.Second)
}

func TestCustomerRepo_Upsert_Rename(t *testing.T) {
	s := setupTestStore(t)
	customer := seedCustomer(t, s, "Acme")

	renamed := *customer
	renamed.Name = "Acme Corp"
	err := s.Customers().Upsert(context.Background(), &renamed)
	require.NoError(t, err)

	found, err := s.Customers().Get(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", found.Name)
	require.Equal(t, customer.CreatedAt.Unix(), found.CreatedAt.Unix(), "CreatedAt should not change")
}

func TestCustomerRepo_Get_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Customers().Get(context.Background(), "nonexistent")
	require.True(t, errors.Is(err, ErrCustomerNotFound), "Error should be ErrCustomerNotFound")
}

func TestCustomerRepo_List(t *testing.T) {
	s := setupTestStore(t)
	seedCustomer(t, s, "Zenith")
	seedCustomer(t, s, "Acme")
	archived := seedCustomer(t, s, "Mothballed")
	archived.Archived = true
	require.NoError(t, s.Customers().Upsert(context.Background(), archived))

	active, err := s.Customers().List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "Acme", active[0].Name, "List should order by name")
	require.Equal(t, "Zenith", active[1].Name)

	all, err := s.Customers().List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Mothballed", all[1].Name)
	require.True(t, all[1].Archived)
}

func TestCustomerRepo_Delete(t *testing.T) {
	s := setupTestStore(t)
	customer := seedCustomer(t, s, "Acme")

	err := s.Customers().Delete(context.Background(), customer.ID)
	require.NoError(t, err)

	_, err = s.Customers().Get(context.Background(), customer.ID)
	require.True(t, errors.Is(err, ErrCustomerNotFound))
}

func TestCustomerRepo_Delete_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.Customers().Delete(context.Background(), "nonexistent")
	require.True(t, errors.Is(err, ErrCustomerNotFound), "Error should be ErrCustomerNotFound")
}

func TestCustomerRepo_Delete_Referenced(t *testing.T) {
	s := setupTestStore(t)
	customer := seedCustomer(t, s, "Acme")
	seedProject(t, s, customer.ID, "Website")

	err := s.Customers().Delete(context.Background(), customer.ID)
	require.Error(t, err, "Delete should fail while projects reference the customer")

	_, err = s.Customers().Get(context.Background(), customer.ID)
	require.NoError(t, err, "Customer should survive the failed delete")
}
