package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type volunteerFormRepository struct {
	st *state
}

func copyForm(f *domain.VolunteerForm) domain.VolunteerForm {
	out := *f
	out.Activities = append([]string(nil), f.Activities...)
	out.Availability = append([]string(nil), f.Availability...)
	out.Certifications = append([]string(nil), f.Certifications...)
	if f.ReviewedOn != nil {
		out.ReviewedOn = ptr(*f.ReviewedOn)
	}
	return out
}

func (r *volunteerFormRepository) CreateForUser(ctx context.Context, f *domain.VolunteerForm) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	u, ok := r.st.users[f.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.st.forms {
		if existing.UserID == f.UserID {
			return repository.ErrDuplicate
		}
	}

	if f.Status == "" {
		f.Status = domain.RequestStatusPending
	}
	now := time.Now().UTC()
	f.ID = r.st.id()
	f.CreatedOn = now
	stored := copyForm(f)
	r.st.forms[f.ID] = &stored

	u.FormCompleted = true
	u.UpdatedOn = now
	return nil
}

func (r *volunteerFormRepository) GetByID(ctx context.Context, id int32) (*domain.VolunteerForm, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	f, ok := r.st.forms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyForm(f)
	return &out, nil
}

func (r *volunteerFormRepository) GetByUser(ctx context.Context, userID int32) (*domain.VolunteerForm, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for _, f := range r.st.forms {
		if f.UserID == userID {
			out := copyForm(f)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *volunteerFormRepository) List(ctx context.Context, status domain.RequestStatus) ([]domain.VolunteerForm, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var forms []domain.VolunteerForm
	for _, f := range r.st.forms {
		if status != "" && f.Status != status {
			continue
		}
		forms = append(forms, copyForm(f))
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].ID > forms[j].ID })
	return forms, nil
}

func (r *volunteerFormRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int32, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var count int32
	for _, f := range r.st.forms {
		if f.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *volunteerFormRepository) Review(ctx context.Context, id int32, status domain.RequestStatus, promoteTo domain.UserRole) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	f, ok := r.st.forms[id]
	if !ok {
		return repository.ErrNotFound
	}
	if f.Status != domain.RequestStatusPending {
		return repository.ErrStatusConflict
	}

	now := time.Now().UTC()
	if promoteTo != "" {
		u, ok := r.st.users[f.UserID]
		if !ok {
			return repository.ErrNotFound
		}
		if !u.Role.AtLeast(promoteTo) {
			u.Role = promoteTo
			u.UpdatedOn = now
		}
	}
	f.Status = status
	f.ReviewedOn = &now
	return nil
}
