package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
	"github.com/Sama2511/LJM-sub000/internal/service"
)

func newAdminService(userRepo *MockUserRepo) service.AdminService {
	return service.NewAdminService(userRepo, new(MockFormRepo), new(MockEventRepo), new(MockRequestRepo))
}

func TestAdminService_Guards(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := newAdminService(userRepo)

	assert.ErrorIs(t, svc.BanUser(ctx, nil, 5), domain.ErrNotAuthenticated)
	assert.ErrorIs(t, svc.BanUser(ctx, volunteer(2), 5), domain.ErrAdminRequired)
	assert.ErrorIs(t, svc.BanUser(ctx, admin(), admin().UserID), domain.ErrSelfModification)
	assert.ErrorIs(t, svc.RemoveAdmin(ctx, admin(), admin().UserID), domain.ErrSelfModification)
	assert.ErrorIs(t, svc.DeleteUser(ctx, admin(), admin().UserID), domain.ErrSelfModification)

	err := svc.UpdateUserRole(ctx, admin(), 5, domain.UserRole("owner"))
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

	userRepo.On("GetByID", ctx, int32(9)).Return(nil, repository.ErrNotFound).Once()
	assert.ErrorIs(t, svc.MakeAdmin(ctx, admin(), 9), domain.ErrUserNotFound)
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Changed", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5, Role: domain.UserRoleVolunteer}, nil).Once()
		userRepo.On("UpdateRole", ctx, int32(5), domain.UserRoleSeniorVolunteer).Return(nil).Once()

		require.NoError(t, newAdminService(userRepo).UpdateUserRole(ctx, admin(), 5, domain.UserRoleSeniorVolunteer))
		userRepo.AssertExpectations(t)
	})

	t.Run("Unchanged", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5, Role: domain.UserRoleAdmin}, nil).Once()

		require.NoError(t, newAdminService(userRepo).MakeAdmin(ctx, admin(), 5))
		userRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAdminService_RemoveAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("NotAnAdmin", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5, Name: "Sam", Role: domain.UserRoleVolunteer}, nil).Once()

		err := newAdminService(userRepo).RemoveAdmin(ctx, admin(), 5)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		assert.EqualError(t, err, "Sam is not an admin")
	})

	t.Run("Demoted", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5, Name: "Sam", Role: domain.UserRoleAdmin}, nil).Once()
		userRepo.On("UpdateRole", ctx, int32(5), domain.UserRoleVolunteer).Return(nil).Once()

		require.NoError(t, newAdminService(userRepo).RemoveAdmin(ctx, admin(), 5))
		userRepo.AssertExpectations(t)
	})
}

func TestAdminService_BanAndUnban(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := newAdminService(userRepo)

	userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5, Status: domain.UserStatusActive}, nil).Once()
	userRepo.On("UpdateStatus", ctx, int32(5), domain.UserStatusBanned).Return(nil).Once()
	require.NoError(t, svc.BanUser(ctx, admin(), 5))

	// Unbanning an active user writes nothing.
	userRepo.On("GetByID", ctx, int32(6)).Return(&domain.User{ID: 6, Status: domain.UserStatusActive}, nil).Once()
	require.NoError(t, svc.UnbanUser(ctx, admin(), 6))

	userRepo.AssertExpectations(t)
	userRepo.AssertNotCalled(t, "UpdateStatus", ctx, int32(6), mock.Anything)
}

func TestAdminService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5}, nil).Once()
	userRepo.On("Delete", ctx, int32(5)).Return(nil).Once()

	require.NoError(t, newAdminService(userRepo).DeleteUser(ctx, admin(), 5))
	userRepo.AssertExpectations(t)
}

func TestAdminService_ListEventRequests(t *testing.T) {
	ctx := context.Background()
	eventRepo := new(MockEventRepo)
	requestRepo := new(MockRequestRepo)
	svc := service.NewAdminService(new(MockUserRepo), new(MockFormRepo), eventRepo, requestRepo)

	eventRepo.On("GetByID", ctx, int32(7)).Return(&domain.Event{ID: 7, Title: "Food drive"}, nil).Once()
	requestRepo.On("ListByEvent", ctx, int32(7), []domain.RequestStatus{domain.RequestStatusPending}).Return([]domain.VolunteerRequest{
		{ID: 1, UserID: 5, EventID: 7, RoleID: int32Ptr(2), Status: domain.RequestStatusPending, UserName: "Dana"},
	}, nil).Once()

	reqs, err := svc.ListEventRequests(ctx, admin(), 7, domain.RequestStatusPending)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Food drive", reqs[0].EventTitle)

	eventRepo.On("GetByID", ctx, int32(8)).Return(nil, repository.ErrNotFound).Once()
	_, err = svc.ListEventRequests(ctx, admin(), 8)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestAdminService_ListApplications(t *testing.T) {
	ctx := context.Background()
	formRepo := new(MockFormRepo)
	svc := service.NewAdminService(new(MockUserRepo), formRepo, new(MockEventRepo), new(MockRequestRepo))

	formRepo.On("List", ctx, domain.RequestStatusPending).Return([]domain.VolunteerForm{{ID: 1}, {ID: 2}}, nil).Once()
	forms, err := svc.ListApplications(ctx, admin(), domain.RequestStatusPending)
	require.NoError(t, err)
	assert.Len(t, forms, 2)

	_, err = svc.ListApplications(ctx, volunteer(3), "")
	assert.ErrorIs(t, err, domain.ErrAdminRequired)
}
