// Package edits builds the undoable commands behind every mutation in
// the application. Each producer pairs a repository write with its
// inverse and allocates identity up front, so the engine can replay the
// forward effect safely when a command is redone.
package edits

import (
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/undo"
)

// Command kinds produced by this package.
const (
	KindEntryCreate    undo.Kind = "entry.create"
	KindEntryUpdate    undo.Kind = "entry.update"
	KindEntryDelete    undo.Kind = "entry.delete"
	KindEntryMove      undo.Kind = "entry.move"
	KindProjectCreate  undo.Kind = "project.create"
	KindProjectRename  undo.Kind = "project.rename"
	KindProjectArchive undo.Kind = "project.archive"
	KindCustomerCreate undo.Kind = "customer.create"
	KindCustomerRename undo.Kind = "customer.rename"
	KindActivityCreate undo.Kind = "activity.create"
	KindActivityRename undo.Kind = "activity.rename"
)

// Clock supplies command timestamps. Tests substitute a fixed clock.
type Clock func() time.Time

// NoteChanger is implemented by commands that rewrite an entry's note.
// The history panel uses it to render a word-level diff.
type NoteChanger interface {
	NoteChange() (old, new string, ok bool)
}

// Factory builds edit commands over the store's repositories.
type Factory struct {
	customers  store.CustomerRepo
	projects   store.ProjectRepo
	activities store.ActivityRepo
	entries    store.EntryRepo
	clock      Clock
}

// NewFactory creates a factory over the given store. A nil clock
// defaults to time.Now.
func NewFactory(s *store.Store, clock Clock) *Factory {
	if clock == nil {
		clock = time.Now
	}
	return &Factory{
		customers:  s.Customers(),
		projects:   s.Projects(),
		activities: s.Activities(),
		entries:    s.Entries(),
		clock:      clock,
	}
}

// base carries the identity fields shared by every edit command.
type base struct {
	id        string
	kind      undo.Kind
	createdAt time.Time
	label     string
}

func (b base) ID() string           { return b.id }
func (b base) Kind() undo.Kind      { return b.kind }
func (b base) CreatedAt() time.Time { return b.createdAt }
func (b base) Label() string        { return b.label }

func (f *Factory) newBase(kind undo.Kind, label string) base {
	return base{
		id:        uuid.NewString(),
		kind:      kind,
		createdAt: f.clock(),
		label:     label,
	}
}
