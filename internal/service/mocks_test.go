package service_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Sama2511/LJM-sub000/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, id int32, role domain.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateStatus(ctx context.Context, id int32, status domain.UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) CreateWithRoles(ctx context.Context, event *domain.Event, roles []domain.EventRole) error {
	args := m.Called(ctx, event, roles)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) List(ctx context.Context, fromDate string) ([]domain.Event, error) {
	args := m.Called(ctx, fromDate)
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) UpdateWithRoles(ctx context.Context, event *domain.Event, roles []domain.EventRole) error {
	args := m.Called(ctx, event, roles)
	return args.Error(0)
}
func (m *MockEventRepo) DeleteCascade(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEventRepo) ListRoles(ctx context.Context, eventID int32) ([]domain.EventRole, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.EventRole), args.Error(1)
}
func (m *MockEventRepo) GetRole(ctx context.Context, roleID int32) (*domain.EventRole, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventRole), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) CreateWithinCapacity(ctx context.Context, req *domain.VolunteerRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.VolunteerRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerRequest), args.Error(1)
}
func (m *MockRequestRepo) ListByEvent(ctx context.Context, eventID int32, statuses ...domain.RequestStatus) ([]domain.VolunteerRequest, error) {
	args := m.Called(ctx, eventID, statuses)
	return args.Get(0).([]domain.VolunteerRequest), args.Error(1)
}
func (m *MockRequestRepo) ListByUser(ctx context.Context, userID int32) ([]domain.VolunteerRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.VolunteerRequest), args.Error(1)
}
func (m *MockRequestRepo) CountByStatus(ctx context.Context, status domain.RequestStatus) (int32, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockRequestRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.RequestStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockRequestRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFormRepo
type MockFormRepo struct {
	mock.Mock
}

func (m *MockFormRepo) CreateForUser(ctx context.Context, form *domain.VolunteerForm) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}
func (m *MockFormRepo) GetByID(ctx context.Context, id int32) (*domain.VolunteerForm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerForm), args.Error(1)
}
func (m *MockFormRepo) GetByUser(ctx context.Context, userID int32) (*domain.VolunteerForm, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerForm), args.Error(1)
}
func (m *MockFormRepo) List(ctx context.Context, status domain.RequestStatus) ([]domain.VolunteerForm, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.VolunteerForm), args.Error(1)
}
func (m *MockFormRepo) CountByStatus(ctx context.Context, status domain.RequestStatus) (int32, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockFormRepo) Review(ctx context.Context, id int32, status domain.RequestStatus, promoteTo domain.UserRole) error {
	args := m.Called(ctx, id, status, promoteTo)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) GetByID(ctx context.Context, id int32) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) ListForUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) CountUnread(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, notificationID, userID int32) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkAllAsRead(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, r)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) Remove(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
func (m *MockStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	args := m.Called(ctx, to, toName, subject, plainText, htmlContent)
	return args.Error(0)
}

func volunteer(id int32) *domain.Principal {
	return &domain.Principal{UserID: id, Role: domain.UserRoleVolunteer}
}

func admin() *domain.Principal {
	return &domain.Principal{UserID: 1, Role: domain.UserRoleAdmin}
}

func int32Ptr(v int32) *int32 { return &v }
