package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type userRepository struct {
	st *state
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for _, existing := range r.st.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	if u.Role == "" {
		u.Role = domain.UserRoleUser
	}
	if u.Status == "" {
		u.Status = domain.UserStatusActive
	}
	now := time.Now().UTC()
	u.ID = r.st.id()
	u.CreatedOn = now
	u.UpdatedOn = now

	stored := *u
	r.st.users[u.ID] = &stored
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	u, ok := r.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for _, u := range r.st.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	users := make([]domain.User, 0, len(r.st.users))
	for _, u := range r.st.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int32, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return int32(len(r.st.users)), nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id int32, role domain.UserRole) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	u, ok := r.st.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	u.UpdatedOn = time.Now().UTC()
	return nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int32, status domain.UserStatus) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	u, ok := r.st.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Status = status
	u.UpdatedOn = time.Now().UTC()
	return nil
}

// Delete mirrors the schema's ON DELETE CASCADE for the user's rows.
func (r *userRepository) Delete(ctx context.Context, id int32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.st.users, id)
	for rid, req := range r.st.requests {
		if req.UserID == id {
			delete(r.st.requests, rid)
		}
	}
	for fid, f := range r.st.forms {
		if f.UserID == id {
			delete(r.st.forms, fid)
		}
	}
	for nid, n := range r.st.notifications {
		if n.UserID != nil && *n.UserID == id {
			delete(r.st.notifications, nid)
		}
	}
	for key := range r.st.reads {
		if key.userID == id {
			delete(r.st.reads, key)
		}
	}
	return nil
}
