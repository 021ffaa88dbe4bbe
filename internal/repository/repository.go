package repository

import (
	"context"
	"errors"

	"github.com/Sama2511/LJM-sub000/internal/domain"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a uniqueness rule would be violated.
	ErrDuplicate = errors.New("duplicate record")
	// ErrCapacityReached is returned by CreateWithinCapacity when the role has no free seat.
	ErrCapacityReached = errors.New("role capacity reached")
	// ErrStatusConflict is returned when a conditional status update finds the row in another status.
	ErrStatusConflict = errors.New("status transition not allowed")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int32, error)
	UpdateRole(ctx context.Context, id int32, role domain.UserRole) error
	UpdateStatus(ctx context.Context, id int32, status domain.UserStatus) error
	Delete(ctx context.Context, id int32) error
}

type EventRepository interface {
	// CreateWithRoles inserts the event and its roles atomically and fills in their IDs.
	CreateWithRoles(ctx context.Context, event *domain.Event, roles []domain.EventRole) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	// List returns events ordered by date; a non-empty fromDate (yyyy-mm-dd) excludes earlier events.
	List(ctx context.Context, fromDate string) ([]domain.Event, error)
	// UpdateWithRoles updates the event row and replaces its full role set atomically.
	UpdateWithRoles(ctx context.Context, event *domain.Event, roles []domain.EventRole) error
	// DeleteCascade removes the event with its roles and requests and clears
	// notification references to it, atomically.
	DeleteCascade(ctx context.Context, id int32) error
	ListRoles(ctx context.Context, eventID int32) ([]domain.EventRole, error)
	GetRole(ctx context.Context, roleID int32) (*domain.EventRole, error)
}

type VolunteerRequestRepository interface {
	// CreateWithinCapacity inserts req only if the caller holds no active
	// request for the role and the role still has a free seat. The check and
	// the insert are one atomic operation.
	CreateWithinCapacity(ctx context.Context, req *domain.VolunteerRequest) error
	GetByID(ctx context.Context, id int32) (*domain.VolunteerRequest, error)
	// ListByEvent returns the event's requests, optionally restricted to statuses,
	// with user and role names embedded.
	ListByEvent(ctx context.Context, eventID int32, statuses ...domain.RequestStatus) ([]domain.VolunteerRequest, error)
	// ListByUser returns the user's requests with event and role names embedded.
	ListByUser(ctx context.Context, userID int32) ([]domain.VolunteerRequest, error)
	CountByStatus(ctx context.Context, status domain.RequestStatus) (int32, error)
	// UpdateStatus moves a request from one status to another; ErrStatusConflict
	// is returned if the row is no longer in from.
	UpdateStatus(ctx context.Context, id int32, from, to domain.RequestStatus) error
	Delete(ctx context.Context, id int32) error
}

type VolunteerFormRepository interface {
	// CreateForUser inserts the form and sets the owner's form_completed flag atomically.
	CreateForUser(ctx context.Context, form *domain.VolunteerForm) error
	GetByID(ctx context.Context, id int32) (*domain.VolunteerForm, error)
	GetByUser(ctx context.Context, userID int32) (*domain.VolunteerForm, error)
	// List returns applications, restricted to status when it is non-empty.
	List(ctx context.Context, status domain.RequestStatus) ([]domain.VolunteerForm, error)
	CountByStatus(ctx context.Context, status domain.RequestStatus) (int32, error)
	// Review moves a pending form to status. When promoteTo is non-empty the
	// owner's role is raised to it if currently ranked below, in the same transaction.
	Review(ctx context.Context, id int32, status domain.RequestStatus, promoteTo domain.UserRole) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	GetByID(ctx context.Context, id int32) (*domain.Notification, error)
	// ListForUser returns targeted and broadcast notifications with IsRead set for userID.
	ListForUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	CountUnread(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, notificationID, userID int32) error
	MarkAllAsRead(ctx context.Context, userID int32) error
}
