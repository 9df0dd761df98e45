package edits

import (
	"context"

	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/undo"
)

// recordRepo is the slice of a repository the generic commands need.
// All four store repositories satisfy it.
type recordRepo[T any] interface {
	Upsert(ctx context.Context, row *T) error
	Delete(ctx context.Context, id string) error
}

// createCommand writes a new row on execute and deletes it on undo.
// The row, including its ID, is fixed at build time so a repeated
// execute recreates the same record.
type createCommand[T any] struct {
	base
	repo  recordRepo[T]
	rowID string
	row   T
}

func (c *createCommand[T]) Execute(ctx context.Context) error {
	row := c.row
	return c.repo.Upsert(ctx, &row)
}

func (c *createCommand[T]) Undo(ctx context.Context) error {
	return c.repo.Delete(ctx, c.rowID)
}

// deleteCommand removes a row on execute and restores the captured
// snapshot on undo.
type deleteCommand[T any] struct {
	base
	repo  recordRepo[T]
	rowID string
	row   T
}

func (c *deleteCommand[T]) Execute(ctx context.Context) error {
	return c.repo.Delete(ctx, c.rowID)
}

func (c *deleteCommand[T]) Undo(ctx context.Context) error {
	row := c.row
	return c.repo.Upsert(ctx, &row)
}

// writeCommand upserts the after snapshot on execute and the before
// snapshot on undo. Renames, archive toggles, and entry edits are all
// this shape.
type writeCommand[T any] struct {
	base
	repo   recordRepo[T]
	before T
	after  T
}

func (c *writeCommand[T]) Execute(ctx context.Context) error {
	row := c.after
	return c.repo.Upsert(ctx, &row)
}

func (c *writeCommand[T]) Undo(ctx context.Context) error {
	row := c.before
	return c.repo.Upsert(ctx, &row)
}

var (
	_ undo.Command = (*createCommand[store.Entry])(nil)
	_ undo.Command = (*deleteCommand[store.Entry])(nil)
	_ undo.Command = (*writeCommand[store.Entry])(nil)
	_ undo.Labeler = base{}
)
