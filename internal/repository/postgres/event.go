package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

const dateLayout = "2006-01-02"

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, description, date, start_time, end_time, location, image_key, capacity, created_on, updated_on`

func scanEvent(row interface{ Scan(...any) error }, e *domain.Event) error {
	var date time.Time
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &date, &e.StartTime, &e.EndTime, &e.Location, &e.ImageKey, &e.Capacity, &e.CreatedOn, &e.UpdatedOn); err != nil {
		return err
	}
	e.Date = date.Format(dateLayout)
	return nil
}

func insertRoles(ctx context.Context, tx *sql.Tx, eventID int32, roles []domain.EventRole) error {
	query := `INSERT INTO event_roles (event_id, role_name, capacity) VALUES ($1, $2, $3) RETURNING id`
	for i := range roles {
		roles[i].EventID = eventID
		if err := tx.QueryRowContext(ctx, query, eventID, roles[i].RoleName, roles[i].Capacity).Scan(&roles[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *eventRepository) CreateWithRoles(ctx context.Context, e *domain.Event, roles []domain.EventRole) error {
	logger.EnterMethod("eventRepository.CreateWithRoles", "title", e.Title, "roles", len(roles))

	now := time.Now().UTC()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `INSERT INTO events (title, description, date, start_time, end_time, location, image_key, capacity, created_on, updated_on)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
		logger.DatabaseCall("INSERT", "events", "title", e.Title)
		if err := tx.QueryRowContext(ctx, query, e.Title, e.Description, e.Date, e.StartTime, e.EndTime, e.Location, e.ImageKey, e.Capacity, now, now).Scan(&e.ID); err != nil {
			return err
		}
		return insertRoles(ctx, tx, e.ID, roles)
	})
	if err != nil {
		logger.ExitMethodWithError("eventRepository.CreateWithRoles", err)
		return translate(err)
	}

	e.CreatedOn = now
	e.UpdatedOn = now
	logger.ExitMethod("eventRepository.CreateWithRoles", "eventID", e.ID)
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	e := &domain.Event{}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	if err := scanEvent(r.db.QueryRowContext(ctx, query, id), e); err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, fromDate string) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	var args []any
	if fromDate != "" {
		query += ` WHERE date >= $1`
		args = append(args, fromDate)
	}
	query += ` ORDER BY date, start_time`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) UpdateWithRoles(ctx context.Context, e *domain.Event, roles []domain.EventRole) error {
	logger.EnterMethod("eventRepository.UpdateWithRoles", "eventID", e.ID, "roles", len(roles))

	now := time.Now().UTC()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `UPDATE events SET title = $1, description = $2, date = $3, start_time = $4, end_time = $5,
		          location = $6, image_key = $7, capacity = $8, updated_on = $9 WHERE id = $10`
		result, err := tx.ExecContext(ctx, query, e.Title, e.Description, e.Date, e.StartTime, e.EndTime, e.Location, e.ImageKey, e.Capacity, now, e.ID)
		if err != nil {
			return err
		}
		if err := expectOneRow(result); err != nil {
			return err
		}

		// Full replace: requests on removed roles keep their row with role_id nulled by the FK.
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_roles WHERE event_id = $1`, e.ID); err != nil {
			return err
		}
		return insertRoles(ctx, tx, e.ID, roles)
	})
	if err != nil {
		logger.ExitMethodWithError("eventRepository.UpdateWithRoles", err, "eventID", e.ID)
		return translate(err)
	}

	e.UpdatedOn = now
	logger.ExitMethod("eventRepository.UpdateWithRoles", "eventID", e.ID)
	return nil
}

func (r *eventRepository) DeleteCascade(ctx context.Context, id int32) error {
	logger.EnterMethod("eventRepository.DeleteCascade", "eventID", id)

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM volunteer_requests WHERE event_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE notifications SET reference_type = NULL, reference_id = NULL WHERE reference_type = $1 AND reference_id = $2`,
			domain.ReferenceEvent, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_roles WHERE event_id = $1`, id); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOneRow(result)
	})
	if err != nil {
		logger.ExitMethodWithError("eventRepository.DeleteCascade", err, "eventID", id)
		return translate(err)
	}

	logger.ExitMethod("eventRepository.DeleteCascade", "eventID", id)
	return nil
}

func (r *eventRepository) ListRoles(ctx context.Context, eventID int32) ([]domain.EventRole, error) {
	query := `SELECT id, event_id, role_name, capacity FROM event_roles WHERE event_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.EventRole
	for rows.Next() {
		var role domain.EventRole
		if err := rows.Scan(&role.ID, &role.EventID, &role.RoleName, &role.Capacity); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *eventRepository) GetRole(ctx context.Context, roleID int32) (*domain.EventRole, error) {
	role := &domain.EventRole{}
	query := `SELECT id, event_id, role_name, capacity FROM event_roles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, roleID).Scan(&role.ID, &role.EventID, &role.RoleName, &role.Capacity)
	if err != nil {
		return nil, translate(err)
	}
	return role, nil
}
