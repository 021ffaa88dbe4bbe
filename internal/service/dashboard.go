package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
	"github.com/Sama2511/LJM-sub000/internal/utils"
)

type dashboardService struct {
	userRepo    repository.UserRepository
	formRepo    repository.VolunteerFormRepository
	eventRepo   repository.EventRepository
	requestRepo repository.VolunteerRequestRepository
}

func NewDashboardService(
	userRepo repository.UserRepository,
	formRepo repository.VolunteerFormRepository,
	eventRepo repository.EventRepository,
	requestRepo repository.VolunteerRequestRepository,
) DashboardService {
	return &dashboardService{
		userRepo:    userRepo,
		formRepo:    formRepo,
		eventRepo:   eventRepo,
		requestRepo: requestRepo,
	}
}

// Overview runs its independent reads concurrently; the first failure cancels the rest.
func (s *dashboardService) Overview(ctx context.Context, p *domain.Principal) (*domain.DashboardOverview, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	out := &domain.DashboardOverview{}
	var events []domain.Event

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalUsers, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.PendingApplications, err = s.formRepo.CountByStatus(gctx, domain.RequestStatusPending)
		return err
	})
	g.Go(func() (err error) {
		out.PendingRequests, err = s.requestRepo.CountByStatus(gctx, domain.RequestStatusPending)
		return err
	})
	g.Go(func() (err error) {
		events, err = s.eventRepo.List(gctx, utils.Today(time.Now()))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.Upstream(err)
	}

	// Per-event capacity, also fanned out.
	out.UpcomingEvents = make([]domain.EventDetails, len(events))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range events {
		i := i
		g.Go(func() error {
			roles, err := s.eventRepo.ListRoles(gctx, events[i].ID)
			if err != nil {
				return err
			}
			reqs, err := s.requestRepo.ListByEvent(gctx, events[i].ID, domain.ActiveRequestStatuses...)
			if err != nil {
				return err
			}
			out.UpcomingEvents[i] = domain.EventDetails{
				Event:      events[i],
				Roles:      roles,
				Capacities: utils.ComputeEventCapacity(roles, reqs),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.Upstream(err)
	}
	return out, nil
}
