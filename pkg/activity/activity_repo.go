package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

var (
	ErrActivityNotFound      = errors.New("activity not found")
	ErrActivityAlreadyExists = errors.New("activity already exists")
)

// uniqueViolation is the Postgres error code for duplicate primary keys.
const uniqueViolation = "23505"

type Repository interface {
	Store(ctx context.Context, activity Activity) (Activity, error)
	List(ctx context.Context) ([]Activity, error)
	Get(ctx context.Context, id int) (Activity, error)
	Replace(ctx context.Context, activity Activity) error
	Delete(ctx context.Context, id int) (Activity, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// Store inserts a new Activity. When the Activity carries an explicit id it
// is kept, and a clash with an existing row returns ErrActivityAlreadyExists.
func (r *RepositoryImpl) Store(ctx context.Context, activity Activity) (Activity, error) {
	var descriptionParam any
	if activity.Description != "" {
		descriptionParam = activity.Description
	}

	var row *sql.Row
	if activity.ID != 0 {
		query := `INSERT INTO activity (id, description, creation_date) VALUES ($1, $2, $3) RETURNING id`
		row = r.db.QueryRowContext(ctx, query, activity.ID, descriptionParam, activity.CreationDate.UnixMilli())
	} else {
		query := `INSERT INTO activity (description, creation_date) VALUES ($1, $2) RETURNING id`
		row = r.db.QueryRowContext(ctx, query, descriptionParam, activity.CreationDate.UnixMilli())
	}

	if err := row.Scan(&activity.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Activity{}, ErrActivityAlreadyExists
		}
		err := fmt.Errorf("could not store activity: %w", err)
		log.Error(err)
		return Activity{}, err
	}

	return activity, nil
}

func (r *RepositoryImpl) List(ctx context.Context) ([]Activity, error) {
	query := `SELECT id, description, creation_date FROM activity ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query activities: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	activities := make([]Activity, 0, 10)
	for rows.Next() {
		activity, err := scanActivity(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return activities, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Activity, error) {
	query := `SELECT id, description, creation_date FROM activity WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	activity, err := scanActivity(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Activity{}, ErrActivityNotFound
		}
		log.Error(err)
		return Activity{}, err
	}
	return activity, nil
}

// Replace overwrites the stored record entirely. Not a merge.
func (r *RepositoryImpl) Replace(ctx context.Context, activity Activity) error {
	var descriptionParam any
	if activity.Description != "" {
		descriptionParam = activity.Description
	}

	query := `UPDATE activity SET description = $1, creation_date = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, descriptionParam, activity.CreationDate.UnixMilli(), activity.ID)
	if err != nil {
		err := fmt.Errorf("could not update activity: %w", err)
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
		return ErrActivityNotFound
	}
	return nil
}

// Delete removes the Activity and returns it. Referencing events are removed
// by the database through the cascading foreign key.
func (r *RepositoryImpl) Delete(ctx context.Context, id int) (Activity, error) {
	query := `DELETE FROM activity WHERE id = $1 RETURNING id, description, creation_date`
	row := r.db.QueryRowContext(ctx, query, id)
	activity, err := scanActivity(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Activity{}, ErrActivityNotFound
		}
		log.Error(err)
		return Activity{}, err
	}
	return activity, nil
}

func scanActivity(scan func(dest ...any) error) (Activity, error) {
	var activity Activity
	var description sql.NullString
	var creationMillis int64
	if err := scan(&activity.ID, &description, &creationMillis); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Activity{}, err
		}
		return Activity{}, fmt.Errorf("could not scan activity: %w", err)
	}
	activity.Description = description.String
	activity.CreationDate = time.UnixMilli(creationMillis)
	return activity, nil
}
