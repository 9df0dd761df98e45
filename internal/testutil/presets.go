package testutil

import "github.com/zjrosen/stint/internal/store"

// WithLookupTestData adds the standard customer, project, and activity
// set shared by the admin and picker tests.
func (b *Builder) WithLookupTestData() *Builder {
	return b.
		WithCustomer("cust-acme", CustomerName("Acme")).
		WithCustomer("cust-initech", CustomerName("Initech")).
		WithProject("proj-website", "cust-acme", ProjectName("Website"), Rate(12500)).
		WithProject("proj-app", "cust-acme", ProjectName("App")).
		WithProject("proj-audit", "cust-initech", ProjectName("Audit"), ProjectArchived()).
		WithActivity("act-dev", ActivityName("Development")).
		WithActivity("act-meet", ActivityName("Meetings"))
}

// WithWeekTestData adds entries across the week starting at monday.
// Expects the projects and activities from WithLookupTestData.
func (b *Builder) WithWeekTestData(monday store.Day) *Builder {
	return b.
		WithEntry("entry-mon", "proj-website", "act-dev", monday, Minutes(90), Note("sprint planning")).
		WithEntry("entry-wed", "proj-app", "act-dev", monday.AddDays(2), Minutes(120)).
		WithEntry("entry-wed-2", "proj-website", "act-meet", monday.AddDays(2), Minutes(30), Note("standup")).
		WithEntry("entry-fri", "proj-app", "act-meet", monday.AddDays(4), Minutes(45))
}
