package service

import (
	"context"
	"fmt"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type adminService struct {
	userRepo    repository.UserRepository
	formRepo    repository.VolunteerFormRepository
	eventRepo   repository.EventRepository
	requestRepo repository.VolunteerRequestRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	formRepo repository.VolunteerFormRepository,
	eventRepo repository.EventRepository,
	requestRepo repository.VolunteerRequestRepository,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		formRepo:    formRepo,
		eventRepo:   eventRepo,
		requestRepo: requestRepo,
	}
}

// guardTarget checks the caller may act on userID and returns the target.
func (s *adminService) guardTarget(ctx context.Context, p *domain.Principal, userID int32) (*domain.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if p.UserID == userID {
		return nil, domain.ErrSelfModification
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, domain.ErrUserNotFound)
	}
	return user, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, p *domain.Principal, userID int32, role domain.UserRole) error {
	logger.EnterMethod("adminService.UpdateUserRole", "userID", userID, "role", role)

	if !role.Valid() {
		return domain.Invalid("Unknown role %q", role)
	}
	user, err := s.guardTarget(ctx, p, userID)
	if err != nil {
		return err
	}
	return s.changeRole(ctx, p, user, role)
}

func (s *adminService) MakeAdmin(ctx context.Context, p *domain.Principal, userID int32) error {
	return s.UpdateUserRole(ctx, p, userID, domain.UserRoleAdmin)
}

// RemoveAdmin returns a former admin to the volunteer tier.
func (s *adminService) RemoveAdmin(ctx context.Context, p *domain.Principal, userID int32) error {
	user, err := s.guardTarget(ctx, p, userID)
	if err != nil {
		return err
	}
	if user.Role != domain.UserRoleAdmin {
		return &domain.Error{Kind: domain.KindConflict, Message: fmt.Sprintf("%s is not an admin", user.Name)}
	}
	return s.changeRole(ctx, p, user, domain.UserRoleVolunteer)
}

func (s *adminService) changeRole(ctx context.Context, p *domain.Principal, user *domain.User, role domain.UserRole) error {
	if user.Role == role {
		return nil
	}
	if err := s.userRepo.UpdateRole(ctx, user.ID, role); err != nil {
		return storeErr(err, domain.ErrUserNotFound)
	}

	logger.Workflow(ctx, "update_user_role", "updated", "adminID", p.UserID, "userID", user.ID, "from", user.Role, "to", role)
	return nil
}

func (s *adminService) BanUser(ctx context.Context, p *domain.Principal, userID int32) error {
	return s.setStatus(ctx, p, userID, domain.UserStatusBanned)
}

func (s *adminService) UnbanUser(ctx context.Context, p *domain.Principal, userID int32) error {
	return s.setStatus(ctx, p, userID, domain.UserStatusActive)
}

func (s *adminService) setStatus(ctx context.Context, p *domain.Principal, userID int32, status domain.UserStatus) error {
	logger.EnterMethod("adminService.setStatus", "userID", userID, "status", status)

	user, err := s.guardTarget(ctx, p, userID)
	if err != nil {
		return err
	}
	if user.Status == status {
		return nil
	}
	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return storeErr(err, domain.ErrUserNotFound)
	}

	logger.Workflow(ctx, "set_user_status", string(status), "adminID", p.UserID, "userID", userID)
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, p *domain.Principal, userID int32) error {
	logger.EnterMethod("adminService.DeleteUser", "userID", userID)

	if _, err := s.guardTarget(ctx, p, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return storeErr(err, domain.ErrUserNotFound)
	}

	logger.Workflow(ctx, "delete_user", "deleted", "adminID", p.UserID, "userID", userID)
	return nil
}

func (s *adminService) ListUsers(ctx context.Context, p *domain.Principal) ([]domain.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, domain.Upstream(err)
	}
	return users, nil
}

func (s *adminService) ListApplications(ctx context.Context, p *domain.Principal, status domain.RequestStatus) ([]domain.VolunteerForm, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	forms, err := s.formRepo.List(ctx, status)
	if err != nil {
		return nil, domain.Upstream(err)
	}
	return forms, nil
}

func (s *adminService) ListEventRequests(ctx context.Context, p *domain.Principal, eventID int32, statuses ...domain.RequestStatus) ([]domain.VolunteerRequest, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, storeErr(err, domain.ErrEventNotFound)
	}
	reqs, err := s.requestRepo.ListByEvent(ctx, eventID, statuses...)
	if err != nil {
		return nil, domain.Upstream(err)
	}
	for i := range reqs {
		reqs[i].EventTitle = event.Title
	}
	return reqs, nil
}
