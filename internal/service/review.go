package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/metrics"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type reviewService struct {
	requestRepo repository.VolunteerRequestRepository
	formRepo    repository.VolunteerFormRepository
	notes       *notifier
}

func NewReviewService(
	requestRepo repository.VolunteerRequestRepository,
	formRepo repository.VolunteerFormRepository,
	noteRepo repository.NotificationRepository,
) ReviewService {
	return &reviewService{
		requestRepo: requestRepo,
		formRepo:    formRepo,
		notes:       newNotifier(noteRepo),
	}
}

func (s *reviewService) ApproveApplication(ctx context.Context, p *domain.Principal, applicationID int32) error {
	return s.reviewApplication(ctx, p, applicationID, domain.RequestStatusApproved)
}

func (s *reviewService) RejectApplication(ctx context.Context, p *domain.Principal, applicationID int32) error {
	return s.reviewApplication(ctx, p, applicationID, domain.RequestStatusRejected)
}

func (s *reviewService) reviewApplication(ctx context.Context, p *domain.Principal, applicationID int32, decision domain.RequestStatus) error {
	logger.EnterMethod("reviewService.reviewApplication", "applicationID", applicationID, "decision", decision)

	if err := requireAdmin(p); err != nil {
		return err
	}

	// 1. Look up the applicant
	form, err := s.formRepo.GetByID(ctx, applicationID)
	if err != nil {
		return storeErr(err, domain.ErrApplicationNotFound)
	}
	if form.Status.IsFinal() {
		return domain.ErrApplicationReviewed
	}

	// 2. Conditional status change; approval promotes a plain user in the same transaction
	var promoteTo domain.UserRole
	if decision == domain.RequestStatusApproved {
		promoteTo = domain.UserRoleVolunteer
	}
	if err := s.formRepo.Review(ctx, applicationID, decision, promoteTo); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return domain.ErrApplicationReviewed
		}
		logger.ExitMethodWithError("reviewService.reviewApplication", err, "applicationID", applicationID)
		return storeErr(err, domain.ErrApplicationNotFound)
	}
	metrics.RecordReview("application", string(decision))

	// 3. Tell the applicant
	refType, refID := reference(domain.ReferenceApplication, applicationID)
	in := NotificationInput{
		Type:          domain.NotificationApplicationApproved,
		Title:         "Application approved",
		Message:       "Your volunteer application has been approved. Welcome aboard!",
		ReferenceType: refType,
		ReferenceID:   refID,
	}
	if decision == domain.RequestStatusRejected {
		in.Type = domain.NotificationApplicationRejected
		in.Title = "Application rejected"
		in.Message = "Your volunteer application was not approved."
	}
	s.notes.notifyUser(ctx, form.UserID, in)

	logger.Workflow(ctx, "review_application", string(decision), "applicationID", applicationID, "userID", form.UserID)
	return nil
}

func (s *reviewService) ApproveRequest(ctx context.Context, p *domain.Principal, requestID int32) error {
	return s.reviewRequest(ctx, p, requestID, domain.RequestStatusApproved)
}

func (s *reviewService) RejectRequest(ctx context.Context, p *domain.Principal, requestID int32) error {
	return s.reviewRequest(ctx, p, requestID, domain.RequestStatusRejected)
}

func (s *reviewService) reviewRequest(ctx context.Context, p *domain.Principal, requestID int32, decision domain.RequestStatus) error {
	logger.EnterMethod("reviewService.reviewRequest", "requestID", requestID, "decision", decision)

	if err := requireAdmin(p); err != nil {
		return err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return storeErr(err, domain.ErrRequestNotFound)
	}
	if req.Status.IsFinal() {
		return domain.ErrRequestReviewed
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, domain.RequestStatusPending, decision); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return domain.ErrRequestReviewed
		}
		logger.ExitMethodWithError("reviewService.reviewRequest", err, "requestID", requestID)
		return storeErr(err, domain.ErrRequestNotFound)
	}
	metrics.RecordReview("request", string(decision))

	refType, refID := reference(domain.ReferenceRequest, requestID)
	in := NotificationInput{
		Type:          domain.NotificationRequestApproved,
		Title:         "Request approved",
		Message:       fmt.Sprintf("Your request to volunteer for %s has been approved", req.EventTitle),
		ReferenceType: refType,
		ReferenceID:   refID,
	}
	if decision == domain.RequestStatusRejected {
		in.Type = domain.NotificationRequestRejected
		in.Title = "Request rejected"
		in.Message = fmt.Sprintf("Your request to volunteer for %s was not approved", req.EventTitle)
	}
	s.notes.notifyUser(ctx, req.UserID, in)

	logger.Workflow(ctx, "review_request", string(decision), "requestID", requestID, "userID", req.UserID)
	return nil
}

func (s *reviewService) RemoveFromEvent(ctx context.Context, p *domain.Principal, requestID int32) error {
	logger.EnterMethod("reviewService.RemoveFromEvent", "requestID", requestID)

	if err := requireAdmin(p); err != nil {
		return err
	}

	// 1. Capture who and what before the row goes away
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return storeErr(err, domain.ErrRequestNotFound)
	}

	// 2. Delete
	if err := s.requestRepo.Delete(ctx, requestID); err != nil {
		return storeErr(err, domain.ErrRequestNotFound)
	}

	// 3. Notify, best effort
	refType, refID := reference(domain.ReferenceEvent, req.EventID)
	s.notes.notifyUser(ctx, req.UserID, NotificationInput{
		Type:          domain.NotificationRemovedFromEvent,
		Title:         "Removed from event",
		Message:       fmt.Sprintf("You have been removed from %s", req.EventTitle),
		ReferenceType: refType,
		ReferenceID:   refID,
	})

	logger.Workflow(ctx, "remove_from_event", "deleted", "requestID", requestID, "userID", req.UserID, "eventID", req.EventID)
	return nil
}
