// Package seed wipes and re-inserts a fixed set of demo data on startup.
// Intended for demo and local development environments only.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zenithweb/zenith/internal/utils"
	"github.com/zenithweb/zenith/pkg/activity"
	"github.com/zenithweb/zenith/pkg/event"
)

type demoEvent struct {
	activityIndex int
	dayOffset     int
	fromHour      int
	toHour        int
	active        bool
}

var demoActivities = []string{
	"Morning stand-up",
	"Maintenance window",
	"Client workshop",
	"Team lunch",
}

var demoEvents = []demoEvent{
	{activityIndex: 0, dayOffset: 0, fromHour: 9, toHour: 10, active: true},
	{activityIndex: 1, dayOffset: 1, fromHour: 22, toHour: 23, active: true},
	{activityIndex: 2, dayOffset: 2, fromHour: 13, toHour: 16, active: true},
	{activityIndex: 3, dayOffset: 3, fromHour: 12, toHour: 13, active: false},
	{activityIndex: 0, dayOffset: 4, fromHour: 9, toHour: 10, active: true},
}

// Run deletes all stored events and activities and inserts the demo set. The
// demo events are placed on consecutive days starting today so the week view
// has something to show.
func Run(ctx context.Context, db *sql.DB, activities activity.Repository, events event.EventRepository, clock utils.Clock) error {
	log.Info("Seeding demo data")

	// Events first; cascade would handle it, but being explicit keeps the
	// intent visible.
	if _, err := db.ExecContext(ctx, "DELETE FROM event"); err != nil {
		return fmt.Errorf("could not delete events: %w", err)
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM activity"); err != nil {
		return fmt.Errorf("could not delete activities: %w", err)
	}

	now := clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stored := make([]activity.Activity, 0, len(demoActivities))
	for _, description := range demoActivities {
		a, err := activities.Store(ctx, activity.Activity{Description: description, CreationDate: now})
		if err != nil {
			return fmt.Errorf("could not seed activity %q: %w", description, err)
		}
		stored = append(stored, a)
	}

	for _, e := range demoEvents {
		day := today.AddDate(0, 0, e.dayOffset)
		_, err := events.StoreEvent(ctx, event.Event{
			ActivityID:   stored[e.activityIndex].ID,
			CreationDate: now,
			EnteredBy:    "seed",
			From:         day.Add(time.Duration(e.fromHour) * time.Hour),
			To:           day.Add(time.Duration(e.toHour) * time.Hour),
			IsActive:     e.active,
		})
		if err != nil {
			return fmt.Errorf("could not seed event: %w", err)
		}
	}

	log.Infof("Seeded %d activities and %d events", len(stored), len(demoEvents))
	return nil
}
