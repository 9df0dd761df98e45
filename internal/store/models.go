// Package store provides the local SQLite persistence layer: entity
// models, repository interfaces, and the migrated database handle they
// run against.
package store

import "time"

// Day is a calendar date in YYYY-MM-DD form, the granularity entries
// are booked at. The textual form sorts chronologically.
type Day string

const dayLayout = "2006-01-02"

// DayOf returns the Day containing t in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// Time parses the day back into a time.Time at midnight UTC.
func (d Day) Time() (time.Time, error) {
	return time.Parse(dayLayout, string(d))
}

// AddDays returns the day shifted by n calendar days. Malformed days are
// returned unchanged.
func (d Day) AddDays(n int) Day {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return DayOf(t.AddDate(0, 0, n))
}

// String returns the YYYY-MM-DD form.
func (d Day) String() string {
	return string(d)
}

// WeekOf returns the Monday-to-Sunday span containing t.
func WeekOf(t time.Time) (Day, Day) {
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	return DayOf(monday), DayOf(monday.AddDate(0, 0, 6))
}

// Customer is a billing party projects belong to.
type Customer struct {
	ID        string
	Name      string
	Archived  bool
	CreatedAt time.Time
}

// Project is a billable unit of work under a customer.
type Project struct {
	ID         string
	CustomerID string
	Name       string
	RateCents  int64
	Archived   bool
	CreatedAt  time.Time
}

// Activity is a global code describing what kind of work an entry
// records (development, meeting, travel, ...).
type Activity struct {
	ID        string
	Name      string
	Archived  bool
	CreatedAt time.Time
}

// Entry is one booked block of time: minutes spent on a project and
// activity on a given day, with an optional free-text note.
type Entry struct {
	ID         string
	Day        Day
	ProjectID  string
	ActivityID string
	Minutes    int
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReportRow is one aggregated line of a report: total minutes booked
// against a project or activity over a day span.
type ReportRow struct {
	ID      string
	Name    string
	Minutes int
}
