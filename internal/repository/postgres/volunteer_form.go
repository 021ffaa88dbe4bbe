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

type volunteerFormRepository struct {
	db *sql.DB
}

func NewVolunteerFormRepository(db *sql.DB) repository.VolunteerFormRepository {
	return &volunteerFormRepository{db: db}
}

const formColumns = `id, user_id, full_name, phone, address, emergency_contact_name, emergency_contact_phone,
	activities, availability, certifications, motivation, experience, status, created_on, reviewed_on`

func scanForm(row interface{ Scan(...any) error }, f *domain.VolunteerForm) error {
	var reviewedOn sql.NullTime
	err := row.Scan(&f.ID, &f.UserID, &f.FullName, &f.Phone, &f.Address, &f.EmergencyContactName, &f.EmergencyContactPhone,
		pq.Array(&f.Activities), pq.Array(&f.Availability), pq.Array(&f.Certifications),
		&f.Motivation, &f.Experience, &f.Status, &f.CreatedOn, &reviewedOn)
	if err != nil {
		return err
	}
	if reviewedOn.Valid {
		f.ReviewedOn = &reviewedOn.Time
	}
	return nil
}

func (r *volunteerFormRepository) CreateForUser(ctx context.Context, f *domain.VolunteerForm) error {
	logger.EnterMethod("volunteerFormRepository.CreateForUser", "userID", f.UserID)
	if f.Status == "" {
		f.Status = domain.RequestStatusPending
	}
	now := time.Now().UTC()

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `INSERT INTO volunteer_forms (user_id, full_name, phone, address, emergency_contact_name, emergency_contact_phone,
		          activities, availability, certifications, motivation, experience, status, created_on)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
		err := tx.QueryRowContext(ctx, query, f.UserID, f.FullName, f.Phone, f.Address, f.EmergencyContactName, f.EmergencyContactPhone,
			pq.Array(f.Activities), pq.Array(f.Availability), pq.Array(f.Certifications),
			f.Motivation, f.Experience, f.Status, now).Scan(&f.ID)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `UPDATE users SET form_completed = TRUE, updated_on = $1 WHERE id = $2`, now, f.UserID)
		if err != nil {
			return err
		}
		return expectOneRow(result)
	})
	if err != nil {
		logger.ExitMethodWithError("volunteerFormRepository.CreateForUser", err, "userID", f.UserID)
		return translate(err)
	}

	f.CreatedOn = now
	logger.ExitMethod("volunteerFormRepository.CreateForUser", "formID", f.ID)
	return nil
}

func (r *volunteerFormRepository) GetByID(ctx context.Context, id int32) (*domain.VolunteerForm, error) {
	f := &domain.VolunteerForm{}
	if err := scanForm(r.db.QueryRowContext(ctx, `SELECT `+formColumns+` FROM volunteer_forms WHERE id = $1`, id), f); err != nil {
		return nil, translate(err)
	}
	return f, nil
}

func (r *volunteerFormRepository) GetByUser(ctx context.Context, userID int32) (*domain.VolunteerForm, error) {
	f := &domain.VolunteerForm{}
	if err := scanForm(r.db.QueryRowContext(ctx, `SELECT `+formColumns+` FROM volunteer_forms WHERE user_id = $1`, userID), f); err != nil {
		return nil, translate(err)
	}
	return f, nil
}

func (r *volunteerFormRepository) List(ctx context.Context, status domain.RequestStatus) ([]domain.VolunteerForm, error) {
	query := `SELECT ` + formColumns + ` FROM volunteer_forms`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []domain.VolunteerForm
	for rows.Next() {
		var f domain.VolunteerForm
		if err := scanForm(rows, &f); err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

func (r *volunteerFormRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM volunteer_forms WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *volunteerFormRepository) Review(ctx context.Context, id int32, status domain.RequestStatus, promoteTo domain.UserRole) error {
	logger.EnterMethod("volunteerFormRepository.Review", "formID", id, "status", status)

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var userID int32
		query := `UPDATE volunteer_forms SET status = $1, reviewed_on = $2 WHERE id = $3 AND status = $4 RETURNING user_id`
		err := tx.QueryRowContext(ctx, query, status, time.Now().UTC(), id, domain.RequestStatusPending).Scan(&userID)
		if err == sql.ErrNoRows {
			return rowMissingOrConflict(ctx, tx, `SELECT EXISTS(SELECT 1 FROM volunteer_forms WHERE id = $1)`, id)
		}
		if err != nil {
			return err
		}
		if promoteTo == "" {
			return nil
		}

		var current domain.UserRole
		if err := tx.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&current); err != nil {
			return err
		}
		if current.AtLeast(promoteTo) {
			return nil
		}
		_, err = tx.ExecContext(ctx, `UPDATE users SET role = $1, updated_on = $2 WHERE id = $3`, promoteTo, time.Now().UTC(), userID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("volunteerFormRepository.Review", err, "formID", id)
		return translate(err)
	}

	logger.ExitMethod("volunteerFormRepository.Review", "formID", id)
	return nil
}
