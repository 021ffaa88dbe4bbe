package service

import (
	"context"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

const (
	defaultNotificationPageSize = 20
	maxNotificationPageSize     = 100
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) List(ctx context.Context, p *domain.Principal, limit, offset int32) ([]domain.Notification, int32, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = defaultNotificationPageSize
	}
	if limit > maxNotificationPageSize {
		limit = maxNotificationPageSize
	}
	if offset < 0 {
		offset = 0
	}

	notes, total, err := s.noteRepo.ListForUser(ctx, p.UserID, limit, offset)
	if err != nil {
		return nil, 0, domain.Upstream(err)
	}
	return notes, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, p *domain.Principal) (int32, error) {
	if err := requirePrincipal(p); err != nil {
		return 0, err
	}
	count, err := s.noteRepo.CountUnread(ctx, p.UserID)
	if err != nil {
		return 0, domain.Upstream(err)
	}
	return count, nil
}

// MarkAsRead is idempotent. Notifications addressed to someone else are
// reported as missing.
func (s *notificationService) MarkAsRead(ctx context.Context, p *domain.Principal, notificationID int32) error {
	if err := requirePrincipal(p); err != nil {
		return err
	}

	note, err := s.noteRepo.GetByID(ctx, notificationID)
	if err != nil {
		return storeErr(err, domain.ErrNotificationNotFound)
	}
	if !note.VisibleTo(p.UserID) {
		return domain.ErrNotificationNotFound
	}

	if err := s.noteRepo.MarkAsRead(ctx, notificationID, p.UserID); err != nil {
		return storeErr(err, domain.ErrNotificationNotFound)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, p *domain.Principal) error {
	if err := requirePrincipal(p); err != nil {
		return err
	}
	if err := s.noteRepo.MarkAllAsRead(ctx, p.UserID); err != nil {
		return domain.Upstream(err)
	}
	return nil
}
