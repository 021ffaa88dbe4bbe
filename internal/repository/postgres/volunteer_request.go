package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type volunteerRequestRepository struct {
	db *sql.DB
}

func NewVolunteerRequestRepository(db *sql.DB) repository.VolunteerRequestRepository {
	return &volunteerRequestRepository{db: db}
}

func (r *volunteerRequestRepository) CreateWithinCapacity(ctx context.Context, req *domain.VolunteerRequest) error {
	logger.EnterMethod("volunteerRequestRepository.CreateWithinCapacity", "userID", req.UserID, "eventID", req.EventID, "roleID", req.RoleID)
	if req.RoleID == nil {
		return repository.ErrNotFound
	}
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}
	now := time.Now().UTC()

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		// The row lock serializes concurrent joins on the same role until commit.
		var capacity int32
		lockQuery := `SELECT capacity FROM event_roles WHERE id = $1 AND event_id = $2 FOR UPDATE`
		logger.DatabaseCall("SELECT FOR UPDATE", "event_roles", "roleID", *req.RoleID)
		if err := tx.QueryRowContext(ctx, lockQuery, *req.RoleID, req.EventID).Scan(&capacity); err != nil {
			return err
		}

		var filled, mine int32
		countQuery := `SELECT count(*), count(*) FILTER (WHERE user_id = $2)
		               FROM volunteer_requests WHERE role_id = $1 AND status = ANY($3)`
		if err := tx.QueryRowContext(ctx, countQuery, *req.RoleID, req.UserID, pq.Array(statusStrings(domain.ActiveRequestStatuses))).Scan(&filled, &mine); err != nil {
			return err
		}
		if mine > 0 {
			return repository.ErrDuplicate
		}
		if filled >= capacity {
			return repository.ErrCapacityReached
		}

		insert := `INSERT INTO volunteer_requests (user_id, event_id, role_id, status, created_on)
		           VALUES ($1, $2, $3, $4, $5) RETURNING id`
		return tx.QueryRowContext(ctx, insert, req.UserID, req.EventID, *req.RoleID, req.Status, now).Scan(&req.ID)
	})
	if err != nil {
		logger.ExitMethodWithError("volunteerRequestRepository.CreateWithinCapacity", err, "roleID", *req.RoleID)
		return translate(err)
	}

	req.CreatedOn = now
	logger.ExitMethod("volunteerRequestRepository.CreateWithinCapacity", "requestID", req.ID)
	return nil
}

func (r *volunteerRequestRepository) GetByID(ctx context.Context, id int32) (*domain.VolunteerRequest, error) {
	query := `SELECT vr.id, vr.user_id, vr.event_id, vr.role_id, vr.status, vr.created_on, e.title
	          FROM volunteer_requests vr JOIN events e ON e.id = vr.event_id WHERE vr.id = $1`
	req := &domain.VolunteerRequest{}
	var roleID sql.NullInt32
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.UserID, &req.EventID, &roleID, &req.Status, &req.CreatedOn, &req.EventTitle)
	if err != nil {
		return nil, translate(err)
	}
	if roleID.Valid {
		req.RoleID = &roleID.Int32
	}
	return req, nil
}

func (r *volunteerRequestRepository) ListByEvent(ctx context.Context, eventID int32, statuses ...domain.RequestStatus) ([]domain.VolunteerRequest, error) {
	query := `SELECT vr.id, vr.user_id, vr.event_id, vr.role_id, vr.status, vr.created_on,
	                 u.name, u.email, COALESCE(er.role_name, '')
	          FROM volunteer_requests vr
	          JOIN users u ON u.id = vr.user_id
	          LEFT JOIN event_roles er ON er.id = vr.role_id
	          WHERE vr.event_id = $1`
	args := []any{eventID}
	if len(statuses) > 0 {
		query += ` AND vr.status = ANY($2)`
		args = append(args, pq.Array(statusStrings(statuses)))
	}
	query += ` ORDER BY vr.created_on`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.VolunteerRequest
	for rows.Next() {
		var req domain.VolunteerRequest
		var roleID sql.NullInt32
		if err := rows.Scan(&req.ID, &req.UserID, &req.EventID, &roleID, &req.Status, &req.CreatedOn, &req.UserName, &req.UserEmail, &req.RoleName); err != nil {
			return nil, err
		}
		if roleID.Valid {
			req.RoleID = &roleID.Int32
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *volunteerRequestRepository) ListByUser(ctx context.Context, userID int32) ([]domain.VolunteerRequest, error) {
	query := `SELECT vr.id, vr.user_id, vr.event_id, vr.role_id, vr.status, vr.created_on,
	                 e.title, COALESCE(er.role_name, '')
	          FROM volunteer_requests vr
	          JOIN events e ON e.id = vr.event_id
	          LEFT JOIN event_roles er ON er.id = vr.role_id
	          WHERE vr.user_id = $1
	          ORDER BY e.date`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.VolunteerRequest
	for rows.Next() {
		var req domain.VolunteerRequest
		var roleID sql.NullInt32
		if err := rows.Scan(&req.ID, &req.UserID, &req.EventID, &roleID, &req.Status, &req.CreatedOn, &req.EventTitle, &req.RoleName); err != nil {
			return nil, err
		}
		if roleID.Valid {
			req.RoleID = &roleID.Int32
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *volunteerRequestRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM volunteer_requests WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *volunteerRequestRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.RequestStatus) error {
	query := `UPDATE volunteer_requests SET status = $1 WHERE id = $2 AND status = $3`
	logger.DatabaseCall("UPDATE", "volunteer_requests", "requestID", id, "from", from, "to", to)
	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult("UPDATE", rows, nil, "requestID", id)
	if rows > 0 {
		return nil
	}
	return rowMissingOrConflict(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM volunteer_requests WHERE id = $1)`, id)
}

func (r *volunteerRequestRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM volunteer_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// rowMissingOrConflict explains a conditional update that touched no rows.
func rowMissingOrConflict(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, existsQuery string, id int32) error {
	var exists bool
	if err := q.QueryRowContext(ctx, existsQuery, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrStatusConflict
}
