package activity

import "time"

// Activity is a category of events, e.g. "Scrum meeting" or "Maintenance".
// Deleting an Activity cascades to all events referencing it.
type Activity struct {
	ID           int
	Description  string
	CreationDate time.Time
}
