package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestActivityRepo_Upsert_Insert(t *testing.T) {
	s := setupTestStore(t)

	now := time.Now()
	activity := &Activity{ID: uuid.NewString(), Name: "Development", CreatedAt: now}
	err := s.Activities().Upsert(context.Background(), activity)
	require.NoError(t, err, "Upsert should succeed for new activity")

	found, err := s.Activities().Get(context.Background(), activity.ID)
	require.NoError(t, err)
	require.Equal(t, activity.ID, found.ID)
	require.Equal(t, "Development", found.Name)
	require.False(t, found.Archived)
	require.WithinDuration(t, now, found.CreatedAt, time.Second)
}

func TestActivityRepo_Upsert_Rename(t *testing.T) {
	s := setupTestStore(t)
	activity := seedActivity(t, s, "Development")

	renamed := *activity
	renamed.Name = "Engineering"
	require.NoError(t, s.Activities().Upsert(context.Background(), &renamed))

	found, err := s.Activities().Get(context.Background(), activity.ID)
	require.NoError(t, err)
	require.Equal(t, "Engineering", found.Name)
	require.Equal(t, activity.CreatedAt.Unix(), found.CreatedAt.Unix(), "CreatedAt should not change")
}

func TestActivityRepo_Get_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Activities().Get(context.Background(), "nonexistent")
	require.True(t, errors.Is(err, ErrActivityNotFound), "Error should be ErrActivityNotFound")
}

func TestActivityRepo_List(t *testing.T) {
	s := setupTestStore(t)
	seedActivity(t, s, "Meetings")
	seedActivity(t, s, "Development")
	archived := seedActivity(t, s, "Paperwork")
	archived.Archived = true
	require.NoError(t, s.Activities().Upsert(context.Background(), archived))

	active, err := s.Activities().List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "Development", active[0].Name, "List should order by name")
	require.Equal(t, "Meetings", active[1].Name)

	all, err := s.Activities().List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestActivityRepo_Delete(t *testing.T) {
	s := setupTestStore(t)
	activity := seedActivity(t, s, "Development")

	err := s.Activities().Delete(context.Background(), activity.ID)
	require.NoError(t, err)

	_, err = s.Activities().Get(context.Background(), activity.ID)
	require.True(t, errors.Is(err, ErrActivityNotFound))
}

func TestActivityRepo_Delete_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.Activities().Delete(context.Background(), "nonexistent")
	require.True(t, errors.Is(err, ErrActivityNotFound), "Error should be ErrActivityNotFound")
}
