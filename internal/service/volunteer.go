package service

import (
	"context"
	"errors"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/metrics"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type volunteerService struct {
	eventRepo   repository.EventRepository
	requestRepo repository.VolunteerRequestRepository
	formRepo    repository.VolunteerFormRepository
}

func NewVolunteerService(
	eventRepo repository.EventRepository,
	requestRepo repository.VolunteerRequestRepository,
	formRepo repository.VolunteerFormRepository,
) VolunteerService {
	return &volunteerService{
		eventRepo:   eventRepo,
		requestRepo: requestRepo,
		formRepo:    formRepo,
	}
}

func (s *volunteerService) JoinEvent(ctx context.Context, p *domain.Principal, eventID, roleID int32) (*domain.VolunteerRequest, error) {
	logger.EnterMethod("volunteerService.JoinEvent", "eventID", eventID, "roleID", roleID)

	// 1. Caller must be signed in
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}

	// 2. Role must exist and belong to the event
	role, err := s.eventRepo.GetRole(ctx, roleID)
	if err != nil {
		metrics.RecordJoin("role_not_found")
		return nil, storeErr(err, domain.ErrRoleNotFound)
	}
	if role.EventID != eventID {
		metrics.RecordJoin("role_not_found")
		return nil, domain.ErrRoleNotFound
	}

	// 3. Duplicate check, capacity check and insert as one store operation
	req := &domain.VolunteerRequest{
		UserID:  p.UserID,
		EventID: eventID,
		RoleID:  &role.ID,
		Status:  domain.RequestStatusPending,
	}
	if err := s.requestRepo.CreateWithinCapacity(ctx, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			metrics.RecordJoin("duplicate")
			return nil, domain.ErrDuplicateRequest
		case errors.Is(err, repository.ErrCapacityReached):
			metrics.RecordJoin("capacity_exceeded")
			logger.Workflow(ctx, "join_event", "capacity_exceeded", "userID", p.UserID, "roleID", roleID)
			return nil, domain.ErrRoleFull
		case errors.Is(err, repository.ErrNotFound):
			metrics.RecordJoin("role_not_found")
			return nil, domain.ErrRoleNotFound
		}
		metrics.RecordJoin("error")
		logger.ExitMethodWithError("volunteerService.JoinEvent", err, "roleID", roleID)
		return nil, domain.Upstream(err)
	}

	metrics.RecordJoin("created")
	logger.Workflow(ctx, "join_event", "created", "userID", p.UserID, "requestID", req.ID, "roleID", roleID)
	req.RoleName = role.RoleName
	return req, nil
}

func (s *volunteerService) CancelRequest(ctx context.Context, p *domain.Principal, requestID int32) error {
	if err := requirePrincipal(p); err != nil {
		return err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return storeErr(err, domain.ErrRequestNotFound)
	}
	if req.UserID != p.UserID {
		return &domain.Error{Kind: domain.KindForbidden, Message: "You can only cancel your own requests"}
	}

	if err := s.requestRepo.Delete(ctx, requestID); err != nil {
		return storeErr(err, domain.ErrRequestNotFound)
	}
	logger.Workflow(ctx, "cancel_request", "deleted", "userID", p.UserID, "requestID", requestID)
	return nil
}

func (s *volunteerService) ListMyRequests(ctx context.Context, p *domain.Principal) ([]domain.VolunteerRequest, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}
	reqs, err := s.requestRepo.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, domain.Upstream(err)
	}
	return reqs, nil
}

func (s *volunteerService) SubmitApplication(ctx context.Context, p *domain.Principal, form *domain.VolunteerForm) (*domain.VolunteerForm, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}
	if err := validate(form); err != nil {
		return nil, err
	}

	form.ID = 0
	form.UserID = p.UserID
	form.Status = domain.RequestStatusPending
	form.ReviewedOn = nil

	// Form row and the user's form_completed flag are written together.
	if err := s.formRepo.CreateForUser(ctx, form); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrApplicationSubmitted
		}
		return nil, storeErr(err, domain.ErrUserNotFound)
	}

	logger.Workflow(ctx, "submit_application", "created", "userID", p.UserID, "applicationID", form.ID)
	return form, nil
}

func (s *volunteerService) GetMyApplication(ctx context.Context, p *domain.Principal) (*domain.VolunteerForm, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}
	form, err := s.formRepo.GetByUser(ctx, p.UserID)
	if err != nil {
		return nil, storeErr(err, domain.ErrApplicationNotFound)
	}
	return form, nil
}
