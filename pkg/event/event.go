package event

import (
	"time"

	"github.com/zenithweb/zenith/pkg/activity"
)

// Event is a scheduled occurrence tied to one Activity. The From/To window is
// stored as given; no ordering between the two is enforced.
type Event struct {
	ID           int
	ActivityID   int
	CreationDate time.Time
	EnteredBy    string
	From         time.Time
	To           time.Time
	IsActive     bool

	// Activity is populated only by reads that explicitly join it
	// (ListEventsWithActivity, CurrentWeek). Plain Get leaves it nil.
	Activity *activity.Activity
}
