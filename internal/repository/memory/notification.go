package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type notificationRepository struct {
	st *state
}

func copyNotification(n *domain.Notification) domain.Notification {
	out := *n
	if n.ReferenceType != nil {
		out.ReferenceType = ptr(*n.ReferenceType)
	}
	if n.ReferenceID != nil {
		out.ReferenceID = ptr(*n.ReferenceID)
	}
	if n.UserID != nil {
		out.UserID = ptr(*n.UserID)
	}
	return out
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	n.ID = r.st.id()
	n.CreatedOn = time.Now().UTC()
	n.IsRead = false
	stored := copyNotification(n)
	r.st.notifications[n.ID] = &stored
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int32) (*domain.Notification, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	n, ok := r.st.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyNotification(n)
	return &out, nil
}

// visible must be called with the lock held. Newest first.
func (r *notificationRepository) visible(userID int32) []*domain.Notification {
	var notes []*domain.Notification
	for _, n := range r.st.notifications {
		if n.VisibleTo(userID) {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID > notes[j].ID })
	return notes
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	all := r.visible(userID)
	total := int32(len(all))
	if offset >= total {
		return nil, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	notes := make([]domain.Notification, 0, end-offset)
	for _, n := range all[offset:end] {
		out := copyNotification(n)
		_, out.IsRead = r.st.reads[readKey{userID, n.ID}]
		notes = append(notes, out)
	}
	return notes, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int32) (int32, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var count int32
	for _, n := range r.visible(userID) {
		if _, read := r.st.reads[readKey{userID, n.ID}]; !read {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationID, userID int32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.notifications[notificationID]; !ok {
		return repository.ErrNotFound
	}
	key := readKey{userID, notificationID}
	if _, ok := r.st.reads[key]; !ok {
		r.st.reads[key] = domain.NotificationRead{UserID: userID, NotificationID: notificationID, ReadOn: time.Now().UTC()}
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	now := time.Now().UTC()
	for _, n := range r.visible(userID) {
		key := readKey{userID, n.ID}
		if _, ok := r.st.reads[key]; !ok {
			r.st.reads[key] = domain.NotificationRead{UserID: userID, NotificationID: n.ID, ReadOn: now}
		}
	}
	return nil
}
