package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"github.com/zenithweb/zenith/pkg/activity"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventAlreadyExists = errors.New("event already exists")
)

// uniqueViolation is the Postgres error code for duplicate primary keys.
const uniqueViolation = "23505"

type EventRepository interface {
	StoreEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id int) (Event, error)
	ListEventsWithActivity(ctx context.Context) ([]Event, error)
	ListActiveEventsStartingBetween(ctx context.Context, from, to time.Time) ([]Event, error)
	ReplaceEvent(ctx context.Context, event Event) error
	DeleteEvent(ctx context.Context, id int) (Event, error)
}

type EventRepositoryImpl struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepositoryImpl {
	return &EventRepositoryImpl{db: db}
}

const eventColumns = "id, activity_id, creation_date, entered_by, event_from, event_to, is_active"

// StoreEvent inserts a new Event. When the Event carries an explicit id it is
// kept, and a clash with an existing row returns ErrEventAlreadyExists.
func (r *EventRepositoryImpl) StoreEvent(ctx context.Context, event Event) (Event, error) {
	var enteredByParam any
	if event.EnteredBy != "" {
		enteredByParam = event.EnteredBy
	}

	var row *sql.Row
	if event.ID != 0 {
		query := `INSERT INTO event (id, activity_id, creation_date, entered_by, event_from, event_to, is_active)
				  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		row = r.db.QueryRowContext(ctx, query, event.ID, event.ActivityID, event.CreationDate.UnixMilli(),
			enteredByParam, event.From.UnixMilli(), event.To.UnixMilli(), event.IsActive)
	} else {
		query := `INSERT INTO event (activity_id, creation_date, entered_by, event_from, event_to, is_active)
				  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		row = r.db.QueryRowContext(ctx, query, event.ActivityID, event.CreationDate.UnixMilli(),
			enteredByParam, event.From.UnixMilli(), event.To.UnixMilli(), event.IsActive)
	}

	if err := row.Scan(&event.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Event{}, ErrEventAlreadyExists
		}
		err := fmt.Errorf("could not store event: %w", err)
		log.Error(err)
		return Event{}, err
	}

	return event, nil
}

// GetEvent returns the event without its Activity attached.
func (r *EventRepositoryImpl) GetEvent(ctx context.Context, id int) (Event, error) {
	query := fmt.Sprintf("SELECT %s FROM event WHERE id = $1", eventColumns)
	row := r.db.QueryRowContext(ctx, query, id)

	event, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

// ListEventsWithActivity returns all events with their Activity joined.
func (r *EventRepositoryImpl) ListEventsWithActivity(ctx context.Context) ([]Event, error) {
	query := `SELECT e.id, e.activity_id, e.creation_date, e.entered_by, e.event_from, e.event_to, e.is_active,
					 a.description, a.creation_date
			  FROM event e
			  JOIN activity a ON a.id = e.activity_id
			  ORDER BY e.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		var event Event
		var enteredBy, activityDescription sql.NullString
		var creationMillis, fromMillis, toMillis, activityCreationMillis int64
		err := rows.Scan(&event.ID, &event.ActivityID, &creationMillis, &enteredBy, &fromMillis, &toMillis,
			&event.IsActive, &activityDescription, &activityCreationMillis)
		if err != nil {
			err := fmt.Errorf("could not scan event row: %w", err)
			log.Error(err)
			return nil, err
		}
		event.EnteredBy = enteredBy.String
		event.CreationDate = time.UnixMilli(creationMillis)
		event.From = time.UnixMilli(fromMillis)
		event.To = time.UnixMilli(toMillis)
		event.Activity = &activity.Activity{
			ID:           event.ActivityID,
			Description:  activityDescription.String,
			CreationDate: time.UnixMilli(activityCreationMillis),
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

// ListActiveEventsStartingBetween returns active events whose start falls in
// [from, to), ordered by start time. Activities are not attached.
func (r *EventRepositoryImpl) ListActiveEventsStartingBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM event
			  WHERE is_active AND event_from >= $1 AND event_from < $2
			  ORDER BY event_from`, eventColumns)

	rows, err := r.db.QueryContext(ctx, query, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

// ReplaceEvent overwrites the stored record entirely. Not a merge.
func (r *EventRepositoryImpl) ReplaceEvent(ctx context.Context, event Event) error {
	var enteredByParam any
	if event.EnteredBy != "" {
		enteredByParam = event.EnteredBy
	}

	query := `UPDATE event SET activity_id = $1, creation_date = $2, entered_by = $3,
				  event_from = $4, event_to = $5, is_active = $6
			  WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query, event.ActivityID, event.CreationDate.UnixMilli(),
		enteredByParam, event.From.UnixMilli(), event.To.UnixMilli(), event.IsActive, event.ID)
	if err != nil {
		err := fmt.Errorf("could not update event: %w", err)
		log.Error(err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return err
	}
	if rowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes the event and returns the deleted record.
func (r *EventRepositoryImpl) DeleteEvent(ctx context.Context, id int) (Event, error) {
	query := fmt.Sprintf("DELETE FROM event WHERE id = $1 RETURNING %s", eventColumns)
	row := r.db.QueryRowContext(ctx, query, id)

	event, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

func scanEvent(scan func(dest ...any) error) (Event, error) {
	var event Event
	var enteredBy sql.NullString
	var creationMillis, fromMillis, toMillis int64
	err := scan(&event.ID, &event.ActivityID, &creationMillis, &enteredBy, &fromMillis, &toMillis, &event.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, err
		}
		return Event{}, fmt.Errorf("could not scan event: %w", err)
	}
	event.EnteredBy = enteredBy.String
	event.CreationDate = time.UnixMilli(creationMillis)
	event.From = time.UnixMilli(fromMillis)
	event.To = time.UnixMilli(toMillis)
	return event, nil
}
