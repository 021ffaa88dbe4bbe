package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/service"
)

func TestDashboardService_Overview(t *testing.T) {
	ctx := context.Background()

	t.Run("RequiresAdmin", func(t *testing.T) {
		svc := service.NewDashboardService(new(MockUserRepo), new(MockFormRepo), new(MockEventRepo), new(MockRequestRepo))
		_, err := svc.Overview(ctx, volunteer(5))
		assert.ErrorIs(t, err, domain.ErrAdminRequired)
	})

	t.Run("Summary", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		formRepo := new(MockFormRepo)
		eventRepo := new(MockEventRepo)
		requestRepo := new(MockRequestRepo)

		userRepo.On("Count", mock.Anything).Return(int32(12), nil).Once()
		formRepo.On("CountByStatus", mock.Anything, domain.RequestStatusPending).Return(int32(3), nil).Once()
		requestRepo.On("CountByStatus", mock.Anything, domain.RequestStatusPending).Return(int32(4), nil).Once()
		eventRepo.On("List", mock.Anything, mock.AnythingOfType("string")).Return([]domain.Event{{ID: 7, Title: "Food drive"}}, nil).Once()
		eventRepo.On("ListRoles", mock.Anything, int32(7)).Return([]domain.EventRole{{ID: 2, EventID: 7, RoleName: "Greeter", Capacity: 3}}, nil).Once()
		requestRepo.On("ListByEvent", mock.Anything, int32(7), domain.ActiveRequestStatuses).Return([]domain.VolunteerRequest{
			{ID: 1, RoleID: int32Ptr(2), Status: domain.RequestStatusApproved},
		}, nil).Once()
		svc := service.NewDashboardService(userRepo, formRepo, eventRepo, requestRepo)

		out, err := svc.Overview(ctx, admin())
		require.NoError(t, err)
		assert.Equal(t, int32(12), out.TotalUsers)
		assert.Equal(t, int32(3), out.PendingApplications)
		assert.Equal(t, int32(4), out.PendingRequests)
		require.Len(t, out.UpcomingEvents, 1)
		assert.Equal(t, int32(2), out.UpcomingEvents[0].Capacities[0].Available)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		formRepo := new(MockFormRepo)
		eventRepo := new(MockEventRepo)
		requestRepo := new(MockRequestRepo)

		userRepo.On("Count", mock.Anything).Return(int32(0), errors.New("db down")).Once()
		formRepo.On("CountByStatus", mock.Anything, mock.Anything).Return(int32(0), nil).Maybe()
		requestRepo.On("CountByStatus", mock.Anything, mock.Anything).Return(int32(0), nil).Maybe()
		eventRepo.On("List", mock.Anything, mock.Anything).Return([]domain.Event{}, nil).Maybe()
		svc := service.NewDashboardService(userRepo, formRepo, eventRepo, requestRepo)

		_, err := svc.Overview(ctx, admin())
		assert.Equal(t, domain.KindUpstreamFailure, domain.KindOf(err))
		assert.EqualError(t, err, "db down")
	})
}
