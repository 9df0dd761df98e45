package edits

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/undo"
)

// CreateCustomer builds a command that adds a customer.
func (f *Factory) CreateCustomer(name string) undo.Command {
	customer := store.Customer{ID: uuid.NewString(), Name: name, CreatedAt: f.clock()}
	return &createCommand[store.Customer]{
		base:  f.newBase(KindCustomerCreate, fmt.Sprintf("Create customer %q", name)),
		repo:  f.customers,
		rowID: customer.ID,
		row:   customer,
	}
}

// RenameCustomer builds a command that renames the customer.
func (f *Factory) RenameCustomer(customer store.Customer, name string) undo.Command {
	after := customer
	after.Name = name
	return &writeCommand[store.Customer]{
		base:   f.newBase(KindCustomerRename, fmt.Sprintf("Rename customer %q to %q", customer.Name, name)),
		repo:   f.customers,
		before: customer,
		after:  after,
	}
}

// CreateProject builds a command that adds a project under the customer.
func (f *Factory) CreateProject(customerID, name string, rateCents int64) undo.Command {
	project := store.Project{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Name:       name,
		RateCents:  rateCents,
		CreatedAt:  f.clock(),
	}
	return &createCommand[store.Project]{
		base:  f.newBase(KindProjectCreate, fmt.Sprintf("Create project %q", name)),
		repo:  f.projects,
		rowID: project.ID,
		row:   project,
	}
}

// RenameProject builds a command that renames the project.
func (f *Factory) RenameProject(project store.Project, name string) undo.Command {
	after := project
	after.Name = name
	return &writeCommand[store.Project]{
		base:   f.newBase(KindProjectRename, fmt.Sprintf("Rename project %q to %q", project.Name, name)),
		repo:   f.projects,
		before: project,
		after:  after,
	}
}

// ArchiveProject builds a command that toggles the project's archived
// flag. The label reflects the direction of the toggle.
func (f *Factory) ArchiveProject(project store.Project) undo.Command {
	after := project
	after.Archived = !project.Archived
	label := fmt.Sprintf("Archive project %q", project.Name)
	if project.Archived {
		label = fmt.Sprintf("Restore project %q", project.Name)
	}
	return &writeCommand[store.Project]{
		base:   f.newBase(KindProjectArchive, label),
		repo:   f.projects,
		before: project,
		after:  after,
	}
}

// CreateActivity builds a command that adds an activity.
func (f *Factory) CreateActivity(name string) undo.Command {
	activity := store.Activity{ID: uuid.NewString(), Name: name, CreatedAt: f.clock()}
	return &createCommand[store.Activity]{
		base:  f.newBase(KindActivityCreate, fmt.Sprintf("Create activity %q", name)),
		repo:  f.activities,
		rowID: activity.ID,
		row:   activity,
	}
}

// RenameActivity builds a command that renames the activity.
func (f *Factory) RenameActivity(activity store.Activity, name string) undo.Command {
	after := activity
	after.Name = name
	return &writeCommand[store.Activity]{
		base:   f.newBase(KindActivityRename, fmt.Sprintf("Rename activity %q to %q", activity.Name, name)),
		repo:   f.activities,
		before: activity,
		after:  after,
	}
}
