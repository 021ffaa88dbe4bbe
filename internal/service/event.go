package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/metrics"
	"github.com/Sama2511/LJM-sub000/internal/repository"
	"github.com/Sama2511/LJM-sub000/internal/storage"
	"github.com/Sama2511/LJM-sub000/internal/utils"
)

const eventImagePrefix = "events"

type eventService struct {
	eventRepo   repository.EventRepository
	requestRepo repository.VolunteerRequestRepository
	store       storage.ObjectStorage
	notes       *notifier
}

func NewEventService(
	eventRepo repository.EventRepository,
	requestRepo repository.VolunteerRequestRepository,
	noteRepo repository.NotificationRepository,
	store storage.ObjectStorage,
) EventService {
	return &eventService{
		eventRepo:   eventRepo,
		requestRepo: requestRepo,
		store:       store,
		notes:       newNotifier(noteRepo),
	}
}

func (s *eventService) CreateEvent(ctx context.Context, p *domain.Principal, input *domain.EventInput, image *ImageUpload) (*domain.EventDetails, error) {
	logger.EnterMethod("eventService.CreateEvent")

	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event := &domain.Event{ImageKey: domain.PlaceholderImage}
	applyEventInput(event, input)
	roles := rolesFromInput(input)

	// 1. Image goes to object storage first
	uploaded, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if uploaded != "" {
		event.ImageKey = uploaded
	}

	// 2. Event and roles in one transaction; undo the upload if it fails
	if err := s.eventRepo.CreateWithRoles(ctx, event, roles); err != nil {
		logger.ExitMethodWithError("eventService.CreateEvent", err)
		return nil, s.compensateUpload(ctx, uploaded, err)
	}

	// 3. Announce, best effort
	refType, refID := reference(domain.ReferenceEvent, event.ID)
	s.notes.broadcast(ctx, NotificationInput{
		Type:          domain.NotificationEventCreated,
		Title:         fmt.Sprintf("New event: %s", event.Title),
		Message:       fmt.Sprintf("%s on %s at %s. Volunteers needed!", event.Title, event.Date, event.Location),
		ReferenceType: refType,
		ReferenceID:   refID,
	})

	logger.Workflow(ctx, "create_event", "created", "eventID", event.ID, "capacity", event.Capacity)
	return &domain.EventDetails{
		Event:      *event,
		Roles:      roles,
		Capacities: utils.ComputeEventCapacity(roles, nil),
	}, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, p *domain.Principal, eventID int32, input *domain.EventInput, image *ImageUpload) (*domain.EventDetails, error) {
	logger.EnterMethod("eventService.UpdateEvent", "eventID", eventID)

	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	existing, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, storeErr(err, domain.ErrEventNotFound)
	}

	uploaded, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	event := *existing
	applyEventInput(&event, input)
	if uploaded != "" {
		event.ImageKey = uploaded
	}
	roles := rolesFromInput(input)

	// Row update and full role replacement commit together.
	if err := s.eventRepo.UpdateWithRoles(ctx, &event, roles); err != nil {
		logger.ExitMethodWithError("eventService.UpdateEvent", err, "eventID", eventID)
		return nil, s.compensateUpload(ctx, uploaded, storeErr(err, domain.ErrEventNotFound))
	}

	if uploaded != "" && existing.HasImage() {
		s.removeImage(ctx, existing.ImageKey)
	}

	approved, err := s.requestRepo.ListByEvent(ctx, eventID, domain.RequestStatusApproved)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list volunteers for update notice", "eventID", eventID, "error", err)
	} else {
		refType, refID := reference(domain.ReferenceEvent, eventID)
		s.notes.notifyUsers(ctx, requestUserIDs(approved), NotificationInput{
			Type:          domain.NotificationEventUpdated,
			Title:         "Event updated",
			Message:       fmt.Sprintf("%s has been updated. Please check the latest details.", event.Title),
			ReferenceType: refType,
			ReferenceID:   refID,
		})
	}

	logger.Workflow(ctx, "update_event", "updated", "eventID", eventID, "capacity", event.Capacity)
	return s.GetEvent(ctx, eventID)
}

func (s *eventService) DeleteEvent(ctx context.Context, p *domain.Principal, eventID int32) error {
	logger.EnterMethod("eventService.DeleteEvent", "eventID", eventID)

	if err := requireAdmin(p); err != nil {
		return err
	}

	// 1. Fetch the event for its title and image
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return storeErr(err, domain.ErrEventNotFound)
	}

	// 2. Capture approved volunteers before their requests disappear
	approved, err := s.requestRepo.ListByEvent(ctx, eventID, domain.RequestStatusApproved)
	if err != nil {
		return domain.Upstream(err)
	}
	recipients := requestUserIDs(approved)

	// 3. Requests, notification references, roles and the event in one transaction
	if err := s.eventRepo.DeleteCascade(ctx, eventID); err != nil {
		logger.ExitMethodWithError("eventService.DeleteEvent", err, "eventID", eventID)
		return storeErr(err, domain.ErrEventNotFound)
	}

	// 4. Announce only once the event is really gone
	s.notes.notifyUsers(ctx, recipients, NotificationInput{
		Type:    domain.NotificationEventCancelled,
		Title:   "Event cancelled",
		Message: fmt.Sprintf("%s on %s has been cancelled.", event.Title, event.Date),
	})

	// 5. Image last; a leftover file is only logged
	if event.HasImage() {
		s.removeImage(ctx, event.ImageKey)
	}

	logger.Workflow(ctx, "delete_event", "deleted", "eventID", eventID, "notified", len(approved))
	return nil
}

func (s *eventService) ListEvents(ctx context.Context, upcomingOnly bool) ([]domain.Event, error) {
	var fromDate string
	if upcomingOnly {
		fromDate = utils.Today(time.Now())
	}
	events, err := s.eventRepo.List(ctx, fromDate)
	if err != nil {
		return nil, domain.Upstream(err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID int32) (*domain.EventDetails, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, storeErr(err, domain.ErrEventNotFound)
	}
	roles, capacities, err := s.capacities(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &domain.EventDetails{Event: *event, Roles: roles, Capacities: capacities}, nil
}

func (s *eventService) GetEventCapacity(ctx context.Context, eventID int32) ([]domain.RoleCapacity, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, storeErr(err, domain.ErrEventNotFound)
	}
	_, capacities, err := s.capacities(ctx, eventID)
	return capacities, err
}

func (s *eventService) capacities(ctx context.Context, eventID int32) ([]domain.EventRole, []domain.RoleCapacity, error) {
	roles, err := s.eventRepo.ListRoles(ctx, eventID)
	if err != nil {
		return nil, nil, domain.Upstream(err)
	}
	requests, err := s.requestRepo.ListByEvent(ctx, eventID, domain.ActiveRequestStatuses...)
	if err != nil {
		return nil, nil, domain.Upstream(err)
	}
	return roles, utils.ComputeEventCapacity(roles, requests), nil
}

func (s *eventService) uploadImage(ctx context.Context, image *ImageUpload) (string, error) {
	if image == nil || image.Body == nil {
		return "", nil
	}
	key := storage.NewObjectKey(eventImagePrefix, image.ContentType)
	stored, err := s.store.Upload(ctx, key, image.ContentType, image.Body)
	switch {
	case err == nil:
		return stored, nil
	case errors.Is(err, storage.ErrUnsupportedType):
		return "", domain.Invalid("Unsupported image type %q", image.ContentType)
	case errors.Is(err, storage.ErrTooLarge):
		return "", domain.Invalid("Image is too large")
	}
	logger.ErrorContext(ctx, "Failed to upload event image", "error", err)
	return "", domain.Upstream(err)
}

// compensateUpload removes an image stored for a write that then failed.
// cause is returned unless the removal fails too.
func (s *eventService) compensateUpload(ctx context.Context, key string, cause error) error {
	if key == "" {
		return domain.Upstream(cause)
	}
	if err := s.store.Remove(ctx, key); err != nil {
		metrics.StorageCleanupFailures.Inc()
		logger.ErrorContext(ctx, "Failed to remove orphaned event image", "key", key, "error", err)
		return domain.PartiallyApplied(
			fmt.Sprintf("Event was not saved and its uploaded image could not be removed: %v", cause),
			errors.Join(cause, err),
		)
	}
	return domain.Upstream(cause)
}

func (s *eventService) removeImage(ctx context.Context, key string) {
	if key == "" || key == domain.PlaceholderImage {
		return
	}
	if err := s.store.Remove(ctx, key); err != nil {
		metrics.StorageCleanupFailures.Inc()
		logger.WarnContext(ctx, "Failed to remove event image", "key", key, "error", err)
	}
}

func validateEventInput(input *domain.EventInput) error {
	if input == nil {
		return domain.Invalid("Event details are required")
	}
	if err := validate(input); err != nil {
		return err
	}
	if err := utils.ValidateTimeRange(input.StartTime, input.EndTime); err != nil {
		return domain.Invalid("%s", capitalize(err.Error()))
	}
	seen := make(map[string]bool, len(input.Roles))
	var total int64
	for _, r := range input.Roles {
		name := strings.ToLower(strings.TrimSpace(r.RoleName))
		if seen[name] {
			return domain.Invalid("Duplicate role name %q", r.RoleName)
		}
		seen[name] = true
		total += int64(r.Capacity)
	}
	if total > domain.MaxEventCapacity {
		return domain.Invalid("Total capacity must be at most %d", domain.MaxEventCapacity)
	}
	return nil
}

// applyEventInput copies input onto e, deriving capacity from the roles.
func applyEventInput(e *domain.Event, input *domain.EventInput) {
	e.Title = strings.TrimSpace(input.Title)
	e.Description = input.Description
	e.Date = input.Date
	e.StartTime = input.StartTime
	e.EndTime = input.EndTime
	e.Location = strings.TrimSpace(input.Location)
	e.Capacity = utils.SumRoleCapacity(input.Roles)
}

func rolesFromInput(input *domain.EventInput) []domain.EventRole {
	roles := make([]domain.EventRole, len(input.Roles))
	for i, r := range input.Roles {
		roles[i] = domain.EventRole{RoleName: strings.TrimSpace(r.RoleName), Capacity: r.Capacity}
	}
	return roles
}

func requestUserIDs(reqs []domain.VolunteerRequest) []int32 {
	ids := make([]int32, len(reqs))
	for i, r := range reqs {
		ids[i] = r.UserID
	}
	return ids
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
