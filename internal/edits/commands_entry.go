package edits

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/undo"
)

// CreateEntry builds a command that records a new timesheet entry.
// The entry's ID and timestamps are assigned here; callers fill the
// remaining fields.
func (f *Factory) CreateEntry(entry store.Entry) undo.Command {
	now := f.clock()
	entry.ID = uuid.NewString()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return &createCommand[store.Entry]{
		base:  f.newBase(KindEntryCreate, fmt.Sprintf("Create entry on %s", entry.Day)),
		repo:  f.entries,
		rowID: entry.ID,
		row:   entry,
	}
}

// UpdateEntry builds a command from before and after snapshots of the
// same entry. Identity and creation time always come from before; only
// the update timestamp is reassigned.
func (f *Factory) UpdateEntry(before, after store.Entry) undo.Command {
	after.ID = before.ID
	after.CreatedAt = before.CreatedAt
	after.UpdatedAt = f.clock()
	return &updateEntryCommand{writeCommand[store.Entry]{
		base:   f.newBase(KindEntryUpdate, fmt.Sprintf("Update entry on %s", after.Day)),
		repo:   f.entries,
		before: before,
		after:  after,
	}}
}

// DeleteEntry builds a command that removes the entry and can restore
// the snapshot passed in.
func (f *Factory) DeleteEntry(entry store.Entry) undo.Command {
	return &deleteCommand[store.Entry]{
		base:  f.newBase(KindEntryDelete, fmt.Sprintf("Delete entry on %s", entry.Day)),
		repo:  f.entries,
		rowID: entry.ID,
		row:   entry,
	}
}

// MoveEntry builds a command that reassigns the entry to another
// project and activity.
func (f *Factory) MoveEntry(entry store.Entry, projectID, activityID string) undo.Command {
	after := entry
	after.ProjectID = projectID
	after.ActivityID = activityID
	after.UpdatedAt = f.clock()
	return &writeCommand[store.Entry]{
		base:   f.newBase(KindEntryMove, fmt.Sprintf("Move entry on %s", entry.Day)),
		repo:   f.entries,
		before: entry,
		after:  after,
	}
}

// updateEntryCommand is a writeCommand that additionally reports note
// rewrites for diff rendering.
type updateEntryCommand struct {
	writeCommand[store.Entry]
}

// NoteChange returns the note text before and after the edit. ok is
// false when the edit left the note alone.
func (c *updateEntryCommand) NoteChange() (string, string, bool) {
	return c.before.Note, c.after.Note, c.before.Note != c.after.Note
}

var (
	_ undo.Command = (*updateEntryCommand)(nil)
	_ NoteChanger  = (*updateEntryCommand)(nil)
)
