package service

import (
	"context"
	"io"

	"github.com/Sama2511/LJM-sub000/internal/domain"
)

// Every workflow takes the caller explicitly; a nil principal means the
// request carried no valid identity.

type VolunteerService interface {
	JoinEvent(ctx context.Context, p *domain.Principal, eventID, roleID int32) (*domain.VolunteerRequest, error)
	CancelRequest(ctx context.Context, p *domain.Principal, requestID int32) error
	ListMyRequests(ctx context.Context, p *domain.Principal) ([]domain.VolunteerRequest, error)
	SubmitApplication(ctx context.Context, p *domain.Principal, form *domain.VolunteerForm) (*domain.VolunteerForm, error)
	GetMyApplication(ctx context.Context, p *domain.Principal) (*domain.VolunteerForm, error)
}

type ReviewService interface {
	ApproveApplication(ctx context.Context, p *domain.Principal, applicationID int32) error
	RejectApplication(ctx context.Context, p *domain.Principal, applicationID int32) error
	ApproveRequest(ctx context.Context, p *domain.Principal, requestID int32) error
	RejectRequest(ctx context.Context, p *domain.Principal, requestID int32) error
	RemoveFromEvent(ctx context.Context, p *domain.Principal, requestID int32) error
}

// ImageUpload is an event image supplied with a create or update.
type ImageUpload struct {
	ContentType string
	Body        io.Reader
}

type EventService interface {
	CreateEvent(ctx context.Context, p *domain.Principal, input *domain.EventInput, image *ImageUpload) (*domain.EventDetails, error)
	UpdateEvent(ctx context.Context, p *domain.Principal, eventID int32, input *domain.EventInput, image *ImageUpload) (*domain.EventDetails, error)
	DeleteEvent(ctx context.Context, p *domain.Principal, eventID int32) error
	ListEvents(ctx context.Context, upcomingOnly bool) ([]domain.Event, error)
	GetEvent(ctx context.Context, eventID int32) (*domain.EventDetails, error)
	GetEventCapacity(ctx context.Context, eventID int32) ([]domain.RoleCapacity, error)
}

type AdminService interface {
	UpdateUserRole(ctx context.Context, p *domain.Principal, userID int32, role domain.UserRole) error
	BanUser(ctx context.Context, p *domain.Principal, userID int32) error
	UnbanUser(ctx context.Context, p *domain.Principal, userID int32) error
	MakeAdmin(ctx context.Context, p *domain.Principal, userID int32) error
	RemoveAdmin(ctx context.Context, p *domain.Principal, userID int32) error
	DeleteUser(ctx context.Context, p *domain.Principal, userID int32) error
	ListUsers(ctx context.Context, p *domain.Principal) ([]domain.User, error)
	ListApplications(ctx context.Context, p *domain.Principal, status domain.RequestStatus) ([]domain.VolunteerForm, error)
	ListEventRequests(ctx context.Context, p *domain.Principal, eventID int32, statuses ...domain.RequestStatus) ([]domain.VolunteerRequest, error)
}

type NotificationService interface {
	List(ctx context.Context, p *domain.Principal, limit, offset int32) ([]domain.Notification, int32, error)
	UnreadCount(ctx context.Context, p *domain.Principal) (int32, error)
	MarkAsRead(ctx context.Context, p *domain.Principal, notificationID int32) error
	MarkAllAsRead(ctx context.Context, p *domain.Principal) error
}

type DashboardService interface {
	Overview(ctx context.Context, p *domain.Principal) (*domain.DashboardOverview, error)
}

type ContactService interface {
	Submit(ctx context.Context, msg *domain.ContactMessage) error
}

type EmailService interface {
	Send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error
}
