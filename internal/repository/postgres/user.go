package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, role, status, form_completed, created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }, u *domain.User) error {
	return row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Status, &u.FormCompleted, &u.CreatedOn, &u.UpdatedOn)
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Role == "" {
		u.Role = domain.UserRoleUser
	}
	if u.Status == "" {
		u.Status = domain.UserStatusActive
	}
	now := time.Now().UTC()
	u.CreatedOn = now
	u.UpdatedOn = now

	query := `INSERT INTO users (email, name, role, status, form_completed, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	logger.DatabaseCall("INSERT", "users", "email", u.Email)
	err := r.db.QueryRowContext(ctx, query, u.Email, u.Name, u.Role, u.Status, u.FormCompleted, u.CreatedOn, u.UpdatedOn).Scan(&u.ID)
	logger.DatabaseResult("INSERT", 1, err, "userID", u.ID)
	return translate(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), u); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	if err := scanUser(r.db.QueryRowContext(ctx, query, email), u); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count)
	return count, err
}

func (r *userRepository) UpdateRole(ctx context.Context, id int32, role domain.UserRole) error {
	query := `UPDATE users SET role = $1, updated_on = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, role, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int32, status domain.UserStatus) error {
	query := `UPDATE users SET status = $1, updated_on = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// Delete removes the user; requests, forms and targeted notifications go with
// it through ON DELETE CASCADE.
func (r *userRepository) Delete(ctx context.Context, id int32) error {
	logger.DatabaseCall("DELETE", "users", "userID", id)
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err, "userID", id)
		return err
	}
	return expectOneRow(result)
}
