package testutil

import (
	"time"

	"github.com/zjrosen/stint/internal/store"
)

// customerData holds all data for a customer to be inserted.
type customerData struct {
	id        string
	name      string
	archived  bool
	createdAt time.Time
}

func defaultCustomer(id string) customerData {
	return customerData{id: id, name: id, createdAt: time.Now()}
}

// CustomerOption configures a customer during builder setup.
type CustomerOption func(*customerData)

// CustomerName sets the customer name.
func CustomerName(name string) CustomerOption {
	return func(c *customerData) { c.name = name }
}

// CustomerArchived marks the customer archived.
func CustomerArchived() CustomerOption {
	return func(c *customerData) { c.archived = true }
}

// projectData holds all data for a project to be inserted.
type projectData struct {
	id         string
	customerID string
	name       string
	rateCents  int64
	archived   bool
	createdAt  time.Time
}

func defaultProject(id, customerID string) projectData {
	return projectData{id: id, customerID: customerID, name: id, createdAt: time.Now()}
}

// ProjectOption configures a project during builder setup.
type ProjectOption func(*projectData)

// ProjectName sets the project name.
func ProjectName(name string) ProjectOption {
	return func(p *projectData) { p.name = name }
}

// Rate sets the project hourly rate in cents.
func Rate(cents int64) ProjectOption {
	return func(p *projectData) { p.rateCents = cents }
}

// ProjectArchived marks the project archived.
func ProjectArchived() ProjectOption {
	return func(p *projectData) { p.archived = true }
}

// activityData holds all data for an activity to be inserted.
type activityData struct {
	id        string
	name      string
	archived  bool
	createdAt time.Time
}

func defaultActivity(id string) activityData {
	return activityData{id: id, name: id, createdAt: time.Now()}
}

// ActivityOption configures an activity during builder setup.
type ActivityOption func(*activityData)

// ActivityName sets the activity name.
func ActivityName(name string) ActivityOption {
	return func(a *activityData) { a.name = name }
}

// ActivityArchived marks the activity archived.
func ActivityArchived() ActivityOption {
	return func(a *activityData) { a.archived = true }
}

// entryData holds all data for an entry to be inserted.
type entryData struct {
	id         string
	day        store.Day
	projectID  string
	activityID string
	minutes    int
	note       string
	createdAt  time.Time
}

func defaultEntry(id, projectID, activityID string, day store.Day) entryData {
	return entryData{
		id:         id,
		day:        day,
		projectID:  projectID,
		activityID: activityID,
		minutes:    60,
		createdAt:  time.Now(),
	}
}

// EntryOption configures an entry during builder setup.
type EntryOption func(*entryData)

// Minutes sets the entry duration.
func Minutes(m int) EntryOption {
	return func(e *entryData) { e.minutes = m }
}

// Note sets the entry note.
func Note(note string) EntryOption {
	return func(e *entryData) { e.note = note }
}

// EntryCreatedAt sets the created_at timestamp, which drives the
// ordering of entries that share a day.
func EntryCreatedAt(t time.Time) EntryOption {
	return func(e *entryData) { e.createdAt = t }
}
