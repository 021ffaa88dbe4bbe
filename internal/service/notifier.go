package service

import (
	"context"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/metrics"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

// NotificationInput describes a feed entry before it is addressed.
type NotificationInput struct {
	Type          domain.NotificationType
	Title         string
	Message       string
	ReferenceType *domain.ReferenceType
	ReferenceID   *int32
}

// notifier inserts feed entries after a workflow's primary write has
// succeeded. Failures are logged and counted, never returned.
type notifier struct {
	repo repository.NotificationRepository
}

func newNotifier(repo repository.NotificationRepository) *notifier {
	return &notifier{repo: repo}
}

func (n *notifier) notify(ctx context.Context, userID *int32, in NotificationInput) {
	note := &domain.Notification{
		Type:          in.Type,
		Title:         in.Title,
		Message:       in.Message,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		UserID:        userID,
	}
	err := n.repo.Create(ctx, note)
	metrics.RecordNotification(string(in.Type), err)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create notification", "type", in.Type, "userID", userID, "error", err)
	}
}

func (n *notifier) broadcast(ctx context.Context, in NotificationInput) {
	n.notify(ctx, nil, in)
}

func (n *notifier) notifyUser(ctx context.Context, userID int32, in NotificationInput) {
	n.notify(ctx, &userID, in)
}

// notifyUsers sends one entry per distinct user, in first-seen order.
func (n *notifier) notifyUsers(ctx context.Context, userIDs []int32, in NotificationInput) {
	seen := make(map[int32]bool, len(userIDs))
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		n.notifyUser(ctx, id, in)
	}
}

func reference(t domain.ReferenceType, id int32) (*domain.ReferenceType, *int32) {
	return &t, &id
}
