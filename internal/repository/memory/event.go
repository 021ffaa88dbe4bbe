package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type eventRepository struct {
	st *state
}

// insertRoles must be called with the lock held.
func (r *eventRepository) insertRoles(eventID int32, roles []domain.EventRole) {
	for i := range roles {
		roles[i].ID = r.st.id()
		roles[i].EventID = eventID
		stored := roles[i]
		r.st.roles[stored.ID] = &stored
	}
}

func (r *eventRepository) CreateWithRoles(ctx context.Context, e *domain.Event, roles []domain.EventRole) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	now := time.Now().UTC()
	e.ID = r.st.id()
	e.CreatedOn = now
	e.UpdatedOn = now
	stored := *e
	r.st.events[e.ID] = &stored
	r.insertRoles(e.ID, roles)
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	e, ok := r.st.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *e
	return &out, nil
}

func (r *eventRepository) List(ctx context.Context, fromDate string) ([]domain.Event, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	events := make([]domain.Event, 0, len(r.st.events))
	for _, e := range r.st.events {
		// yyyy-mm-dd compares correctly as a string
		if fromDate != "" && e.Date < fromDate {
			continue
		}
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].StartTime < events[j].StartTime
	})
	return events, nil
}

func (r *eventRepository) UpdateWithRoles(ctx context.Context, e *domain.Event, roles []domain.EventRole) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	existing, ok := r.st.events[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	e.CreatedOn = existing.CreatedOn
	e.UpdatedOn = time.Now().UTC()
	stored := *e
	r.st.events[e.ID] = &stored

	for id, role := range r.st.roles {
		if role.EventID != e.ID {
			continue
		}
		delete(r.st.roles, id)
		// ON DELETE SET NULL
		for _, req := range r.st.requests {
			if req.RoleID != nil && *req.RoleID == id {
				req.RoleID = nil
			}
		}
	}
	r.insertRoles(e.ID, roles)
	return nil
}

func (r *eventRepository) DeleteCascade(ctx context.Context, id int32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.events[id]; !ok {
		return repository.ErrNotFound
	}
	for rid, req := range r.st.requests {
		if req.EventID == id {
			delete(r.st.requests, rid)
		}
	}
	for _, n := range r.st.notifications {
		if n.ReferenceType != nil && *n.ReferenceType == domain.ReferenceEvent && n.ReferenceID != nil && *n.ReferenceID == id {
			n.ReferenceType = nil
			n.ReferenceID = nil
		}
	}
	for roleID, role := range r.st.roles {
		if role.EventID == id {
			delete(r.st.roles, roleID)
		}
	}
	delete(r.st.events, id)
	return nil
}

func (r *eventRepository) ListRoles(ctx context.Context, eventID int32) ([]domain.EventRole, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var roles []domain.EventRole
	for _, role := range r.st.roles {
		if role.EventID == eventID {
			roles = append(roles, *role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles, nil
}

func (r *eventRepository) GetRole(ctx context.Context, roleID int32) (*domain.EventRole, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	role, ok := r.st.roles[roleID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *role
	return &out, nil
}
