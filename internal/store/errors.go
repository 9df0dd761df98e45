package store

import "errors"

// Sentinel errors returned when a lookup or delete targets a row that
// does not exist.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrEntryNotFound    = errors.New("entry not found")
)
