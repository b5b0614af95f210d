package event

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zenithweb/zenith/internal/test_utils"
	"github.com/zenithweb/zenith/pkg/activity"
)

var db *sql.DB

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *EventRepositoryImpl, activity.Activity) {
	t.Helper()
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "TRUNCATE event, activity RESTART IDENTITY CASCADE")
	assert.NoError(t, err)

	activities := activity.NewActivityRepo(db)
	a, err := activities.Store(ctx, activity.Activity{Description: "Morning stand-up", CreationDate: time.Now()})
	assert.NoError(t, err)

	return ctx, NewEventRepo(db), a
}

func testEvent(activityId int) Event {
	return Event{
		ActivityID:   activityId,
		CreationDate: time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC),
		EnteredBy:    "alice",
		From:         time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC),
		To:           time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC),
		IsActive:     true,
	}
}

func assertSameEvent(t *testing.T, expected, actual Event) {
	t.Helper()
	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.ActivityID, actual.ActivityID)
	assert.Equal(t, expected.EnteredBy, actual.EnteredBy)
	assert.Equal(t, expected.IsActive, actual.IsActive)
	assert.Equal(t, expected.CreationDate.UnixMilli(), actual.CreationDate.UnixMilli())
	assert.Equal(t, expected.From.UnixMilli(), actual.From.UnixMilli())
	assert.Equal(t, expected.To.UnixMilli(), actual.To.UnixMilli())
}

func TestEventRepository_StoreAndGet(t *testing.T) {
	// given
	ctx, repo, a := setupTestRepository(t)

	// when
	stored, err := repo.StoreEvent(ctx, testEvent(a.ID))
	assert.NoError(t, err)
	assert.NotZero(t, stored.ID)

	// then
	found, err := repo.GetEvent(ctx, stored.ID)
	assert.NoError(t, err)
	assertSameEvent(t, stored, found)
	assert.Nil(t, found.Activity)
}

func TestEventRepository_StoreWithExplicitId(t *testing.T) {
	// given
	ctx, repo, a := setupTestRepository(t)
	event := testEvent(a.ID)
	event.ID = 42

	// when
	stored, err := repo.StoreEvent(ctx, event)
	assert.NoError(t, err)
	assert.Equal(t, 42, stored.ID)

	// then storing the same id again reports a conflict
	_, err = repo.StoreEvent(ctx, event)
	assert.ErrorIs(t, err, ErrEventAlreadyExists)
}

func TestEventRepository_GetMissing(t *testing.T) {
	ctx, repo, _ := setupTestRepository(t)

	_, err := repo.GetEvent(ctx, 999)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventRepository_ListEventsWithActivity(t *testing.T) {
	// given
	ctx, repo, a := setupTestRepository(t)
	first, err := repo.StoreEvent(ctx, testEvent(a.ID))
	assert.NoError(t, err)
	second := testEvent(a.ID)
	second.From = second.From.AddDate(0, 0, 1)
	_, err = repo.StoreEvent(ctx, second)
	assert.NoError(t, err)

	// when
	events, err := repo.ListEventsWithActivity(ctx)

	// then
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, first.ID, events[0].ID)
	for _, e := range events {
		if assert.NotNil(t, e.Activity) {
			assert.Equal(t, a.ID, e.Activity.ID)
			assert.Equal(t, "Morning stand-up", e.Activity.Description)
		}
	}
}

func TestEventRepository_Replace(t *testing.T) {
	t.Run("overwrites the whole record", func(t *testing.T) {
		// given
		ctx, repo, a := setupTestRepository(t)
		stored, err := repo.StoreEvent(ctx, testEvent(a.ID))
		assert.NoError(t, err)

		// when
		replacement := Event{
			ID:           stored.ID,
			ActivityID:   a.ID,
			CreationDate: time.Date(2024, time.July, 1, 8, 0, 0, 0, time.UTC),
			From:         time.Date(2024, time.July, 2, 9, 0, 0, 0, time.UTC),
			To:           time.Date(2024, time.July, 2, 11, 0, 0, 0, time.UTC),
			IsActive:     false,
		}
		err = repo.ReplaceEvent(ctx, replacement)
		assert.NoError(t, err)

		// then no field of the old record survives
		found, err := repo.GetEvent(ctx, stored.ID)
		assert.NoError(t, err)
		assertSameEvent(t, replacement, found)
		assert.Empty(t, found.EnteredBy)
	})

	t.Run("missing event yields not found", func(t *testing.T) {
		ctx, repo, a := setupTestRepository(t)
		event := testEvent(a.ID)
		event.ID = 999
		assert.ErrorIs(t, repo.ReplaceEvent(ctx, event), ErrEventNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	t.Run("returns the deleted record", func(t *testing.T) {
		// given
		ctx, repo, a := setupTestRepository(t)
		stored, err := repo.StoreEvent(ctx, testEvent(a.ID))
		assert.NoError(t, err)

		// when
		deleted, err := repo.DeleteEvent(ctx, stored.ID)

		// then
		assert.NoError(t, err)
		assertSameEvent(t, stored, deleted)
		_, err = repo.GetEvent(ctx, stored.ID)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("missing event yields not found", func(t *testing.T) {
		ctx, repo, _ := setupTestRepository(t)
		_, err := repo.DeleteEvent(ctx, 999)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventRepository_ListActiveEventsStartingBetween(t *testing.T) {
	// given
	ctx, repo, a := setupTestRepository(t)
	from := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)

	store := func(start time.Time, active bool) Event {
		e := testEvent(a.ID)
		e.From = start
		e.To = start.Add(time.Hour)
		e.IsActive = active
		stored, err := repo.StoreEvent(ctx, e)
		assert.NoError(t, err)
		return stored
	}
	store(from.Add(-time.Minute), true)  // just before the window
	onStart := store(from, true)         // inclusive lower bound
	store(from.AddDate(0, 0, 2), false)  // inactive, excluded
	midweek := store(from.AddDate(0, 0, 4), true)
	store(to, true) // exclusive upper bound

	// when
	events, err := repo.ListActiveEventsStartingBetween(ctx, from, to)

	// then
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, onStart.ID, events[0].ID)
	assert.Equal(t, midweek.ID, events[1].ID)
}

func TestEventRepository_ActivityDeleteCascades(t *testing.T) {
	// given
	ctx, repo, a := setupTestRepository(t)
	activities := activity.NewActivityRepo(db)
	_, err := repo.StoreEvent(ctx, testEvent(a.ID))
	assert.NoError(t, err)
	_, err = repo.StoreEvent(ctx, testEvent(a.ID))
	assert.NoError(t, err)

	// when
	_, err = activities.Delete(ctx, a.ID)
	assert.NoError(t, err)

	// then all referencing events are gone
	events, err := repo.ListEventsWithActivity(ctx)
	assert.NoError(t, err)
	assert.Empty(t, events)
}
