package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type volunteerRequestRepository struct {
	st *state
}

func copyRequest(req *domain.VolunteerRequest) domain.VolunteerRequest {
	out := *req
	if req.RoleID != nil {
		out.RoleID = ptr(*req.RoleID)
	}
	return out
}

func (r *volunteerRequestRepository) CreateWithinCapacity(ctx context.Context, req *domain.VolunteerRequest) error {
	if req.RoleID == nil {
		return repository.ErrNotFound
	}

	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	role, ok := r.st.roles[*req.RoleID]
	if !ok || role.EventID != req.EventID {
		return repository.ErrNotFound
	}

	var filled int32
	for _, existing := range r.st.requests {
		if existing.RoleID == nil || *existing.RoleID != role.ID || !existing.Status.IsActive() {
			continue
		}
		if existing.UserID == req.UserID {
			return repository.ErrDuplicate
		}
		filled++
	}
	if filled >= role.Capacity {
		return repository.ErrCapacityReached
	}

	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}
	req.ID = r.st.id()
	req.CreatedOn = time.Now().UTC()
	stored := copyRequest(req)
	r.st.requests[req.ID] = &stored
	return nil
}

func (r *volunteerRequestRepository) GetByID(ctx context.Context, id int32) (*domain.VolunteerRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	req, ok := r.st.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyRequest(req)
	if e, ok := r.st.events[req.EventID]; ok {
		out.EventTitle = e.Title
	}
	return &out, nil
}

func (r *volunteerRequestRepository) ListByEvent(ctx context.Context, eventID int32, statuses ...domain.RequestStatus) ([]domain.VolunteerRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var reqs []domain.VolunteerRequest
	for _, req := range r.st.requests {
		if req.EventID != eventID || !hasStatus(req.Status, statuses) {
			continue
		}
		out := copyRequest(req)
		if u, ok := r.st.users[req.UserID]; ok {
			out.UserName = u.Name
			out.UserEmail = u.Email
		}
		if req.RoleID != nil {
			if role, ok := r.st.roles[*req.RoleID]; ok {
				out.RoleName = role.RoleName
			}
		}
		reqs = append(reqs, out)
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].ID < reqs[j].ID })
	return reqs, nil
}

func (r *volunteerRequestRepository) ListByUser(ctx context.Context, userID int32) ([]domain.VolunteerRequest, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var reqs []domain.VolunteerRequest
	for _, req := range r.st.requests {
		if req.UserID != userID {
			continue
		}
		out := copyRequest(req)
		if e, ok := r.st.events[req.EventID]; ok {
			out.EventTitle = e.Title
		}
		if req.RoleID != nil {
			if role, ok := r.st.roles[*req.RoleID]; ok {
				out.RoleName = role.RoleName
			}
		}
		reqs = append(reqs, out)
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].ID < reqs[j].ID })
	return reqs, nil
}

func (r *volunteerRequestRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int32, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var count int32
	for _, req := range r.st.requests {
		if req.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *volunteerRequestRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.RequestStatus) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	req, ok := r.st.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	if req.Status != from {
		return repository.ErrStatusConflict
	}
	req.Status = to
	return nil
}

func (r *volunteerRequestRepository) Delete(ctx context.Context, id int32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.requests[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.st.requests, id)
	return nil
}

func hasStatus(status domain.RequestStatus, statuses []domain.RequestStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
