// Package memory is an in-process entity store used for local runs and tests.
// All repositories of one Store share a single lock, so every multi-row
// operation is atomic with respect to every other.
package memory

import (
	"context"
	"sync"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type readKey struct {
	userID         int32
	notificationID int32
}

type state struct {
	mu sync.Mutex

	nextID int32

	users         map[int32]*domain.User
	events        map[int32]*domain.Event
	roles         map[int32]*domain.EventRole
	requests      map[int32]*domain.VolunteerRequest
	forms         map[int32]*domain.VolunteerForm
	notifications map[int32]*domain.Notification
	reads         map[readKey]domain.NotificationRead
}

func (s *state) id() int32 {
	s.nextID++
	return s.nextID
}

type Store struct {
	repository.UserRepository
	repository.EventRepository
	repository.VolunteerRequestRepository
	repository.VolunteerFormRepository
	repository.NotificationRepository
}

func NewStore() *Store {
	st := &state{
		users:         make(map[int32]*domain.User),
		events:        make(map[int32]*domain.Event),
		roles:         make(map[int32]*domain.EventRole),
		requests:      make(map[int32]*domain.VolunteerRequest),
		forms:         make(map[int32]*domain.VolunteerForm),
		notifications: make(map[int32]*domain.Notification),
		reads:         make(map[readKey]domain.NotificationRead),
	}
	return &Store{
		UserRepository:             &userRepository{st},
		EventRepository:            &eventRepository{st},
		VolunteerRequestRepository: &volunteerRequestRepository{st},
		VolunteerFormRepository:    &volunteerFormRepository{st},
		NotificationRepository:     &notificationRepository{st},
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func ptr[T any](v T) *T { return &v }
