package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
	"github.com/Sama2511/LJM-sub000/internal/repository/memory"
)

func seedEvent(t *testing.T, store *memory.Store, capacities ...int32) (*domain.Event, []domain.EventRole) {
	t.Helper()
	e := &domain.Event{Title: "Food drive", Date: "2026-11-02", StartTime: "09:00", EndTime: "12:00", Location: "Hall", ImageKey: domain.PlaceholderImage}
	roles := make([]domain.EventRole, len(capacities))
	for i, c := range capacities {
		roles[i] = domain.EventRole{RoleName: "role", Capacity: c}
		e.Capacity += c
	}
	require.NoError(t, store.EventRepository.CreateWithRoles(context.Background(), e, roles))
	return e, roles
}

func seedUser(t *testing.T, store *memory.Store, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Name: email}
	require.NoError(t, store.UserRepository.Create(context.Background(), u))
	return u
}

func TestCreateWithinCapacity_ConcurrentJoinsNeverOverfill(t *testing.T) {
	store := memory.NewStore()
	e, roles := seedEvent(t, store, 5)
	roleID := roles[0].ID

	const joiners = 50
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(userID int32) {
			defer wg.Done()
			req := &domain.VolunteerRequest{UserID: userID, EventID: e.ID, RoleID: &roleID}
			err := store.VolunteerRequestRepository.CreateWithinCapacity(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, repository.ErrCapacityReached):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(int32(1000 + i))
	}
	wg.Wait()

	assert.Equal(t, 5, created)
	assert.Equal(t, joiners-5, rejected)

	reqs, err := store.VolunteerRequestRepository.ListByEvent(context.Background(), e.ID, domain.ActiveRequestStatuses...)
	require.NoError(t, err)
	assert.Len(t, reqs, 5)
}

func TestCreateWithinCapacity_Boundary(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e, roles := seedEvent(t, store, 5)
	roleID := roles[0].ID

	for i := int32(1); i <= 4; i++ {
		require.NoError(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx,
			&domain.VolunteerRequest{UserID: i, EventID: e.ID, RoleID: &roleID}))
	}

	fifth := &domain.VolunteerRequest{UserID: 5, EventID: e.ID, RoleID: &roleID}
	require.NoError(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, fifth))

	reqs, err := store.VolunteerRequestRepository.ListByEvent(ctx, e.ID, domain.ActiveRequestStatuses...)
	require.NoError(t, err)
	assert.Len(t, reqs, 5)

	sixth := &domain.VolunteerRequest{UserID: 6, EventID: e.ID, RoleID: &roleID}
	assert.ErrorIs(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, sixth), repository.ErrCapacityReached)
}

func TestCreateWithinCapacity_Rules(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e, roles := seedEvent(t, store, 1)
	other, _ := seedEvent(t, store, 1)
	roleID := roles[0].ID

	first := &domain.VolunteerRequest{UserID: 1, EventID: e.ID, RoleID: &roleID}
	require.NoError(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, first))
	assert.Equal(t, domain.RequestStatusPending, first.Status)

	dup := &domain.VolunteerRequest{UserID: 1, EventID: e.ID, RoleID: &roleID}
	assert.ErrorIs(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, dup), repository.ErrDuplicate)

	full := &domain.VolunteerRequest{UserID: 2, EventID: e.ID, RoleID: &roleID}
	assert.ErrorIs(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, full), repository.ErrCapacityReached)

	wrongEvent := &domain.VolunteerRequest{UserID: 2, EventID: other.ID, RoleID: &roleID}
	assert.ErrorIs(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, wrongEvent), repository.ErrNotFound)

	// A rejected request frees its seat and allows the same user to ask again.
	require.NoError(t, store.VolunteerRequestRepository.UpdateStatus(ctx, first.ID, domain.RequestStatusPending, domain.RequestStatusRejected))
	again := &domain.VolunteerRequest{UserID: 1, EventID: e.ID, RoleID: &roleID}
	assert.NoError(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, again))
}

func TestUpdateStatus_Terminal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e, roles := seedEvent(t, store, 2)

	req := &domain.VolunteerRequest{UserID: 1, EventID: e.ID, RoleID: &roles[0].ID}
	require.NoError(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, req))

	require.NoError(t, store.VolunteerRequestRepository.UpdateStatus(ctx, req.ID, domain.RequestStatusPending, domain.RequestStatusApproved))
	err := store.VolunteerRequestRepository.UpdateStatus(ctx, req.ID, domain.RequestStatusPending, domain.RequestStatusRejected)
	assert.ErrorIs(t, err, repository.ErrStatusConflict)
	assert.ErrorIs(t, store.VolunteerRequestRepository.UpdateStatus(ctx, 999, domain.RequestStatusPending, domain.RequestStatusApproved), repository.ErrNotFound)
}

func TestDeleteCascade(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e, roles := seedEvent(t, store, 3)
	kept, keptRoles := seedEvent(t, store, 3)

	for _, uid := range []int32{1, 2} {
		require.NoError(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, &domain.VolunteerRequest{UserID: uid, EventID: e.ID, RoleID: &roles[0].ID}))
	}
	require.NoError(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, &domain.VolunteerRequest{UserID: 1, EventID: kept.ID, RoleID: &keptRoles[0].ID}))

	ref := domain.ReferenceEvent
	note := &domain.Notification{Type: domain.NotificationEventCreated, Title: "New event", ReferenceType: &ref, ReferenceID: &e.ID}
	require.NoError(t, store.NotificationRepository.Create(ctx, note))

	require.NoError(t, store.EventRepository.DeleteCascade(ctx, e.ID))

	_, err := store.EventRepository.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	reqs, _ := store.VolunteerRequestRepository.ListByEvent(ctx, e.ID)
	assert.Empty(t, reqs)
	rs, _ := store.EventRepository.ListRoles(ctx, e.ID)
	assert.Empty(t, rs)

	got, err := store.NotificationRepository.GetByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ReferenceType)
	assert.Nil(t, got.ReferenceID)

	keptReqs, _ := store.VolunteerRequestRepository.ListByEvent(ctx, kept.ID)
	assert.Len(t, keptReqs, 1)

	assert.ErrorIs(t, store.EventRepository.DeleteCascade(ctx, e.ID), repository.ErrNotFound)
}

func TestUpdateWithRoles_ReplacesRolesAndDetachesRequests(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e, roles := seedEvent(t, store, 10, 5, 3)

	req := &domain.VolunteerRequest{UserID: 1, EventID: e.ID, RoleID: &roles[1].ID}
	require.NoError(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, req))

	e.Capacity = 4
	newRoles := []domain.EventRole{{RoleName: "Packer", Capacity: 4}}
	require.NoError(t, store.EventRepository.UpdateWithRoles(ctx, e, newRoles))

	listed, err := store.EventRepository.ListRoles(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Packer", listed[0].RoleName)

	got, err := store.VolunteerRequestRepository.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RoleID)
	assert.Equal(t, "Food drive", got.EventTitle)
}

func TestVolunteerForm_CreateAndReview(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "ana@test.org")

	form := &domain.VolunteerForm{UserID: u.ID, FullName: "Ana", Activities: []string{"cooking"}}
	require.NoError(t, store.VolunteerFormRepository.CreateForUser(ctx, form))
	assert.ErrorIs(t, store.VolunteerFormRepository.CreateForUser(ctx, &domain.VolunteerForm{UserID: u.ID}), repository.ErrDuplicate)

	got, _ := store.UserRepository.GetByID(ctx, u.ID)
	assert.True(t, got.FormCompleted)

	require.NoError(t, store.VolunteerFormRepository.Review(ctx, form.ID, domain.RequestStatusApproved, domain.UserRoleVolunteer))
	got, _ = store.UserRepository.GetByID(ctx, u.ID)
	assert.Equal(t, domain.UserRoleVolunteer, got.Role)

	reviewed, _ := store.VolunteerFormRepository.GetByID(ctx, form.ID)
	assert.Equal(t, domain.RequestStatusApproved, reviewed.Status)
	assert.NotNil(t, reviewed.ReviewedOn)

	assert.ErrorIs(t, store.VolunteerFormRepository.Review(ctx, form.ID, domain.RequestStatusRejected, ""), repository.ErrStatusConflict)
}

func TestNotifications_ReadState(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	alice := int32(1)
	bob := int32(2)

	broadcast := &domain.Notification{Type: domain.NotificationEventCreated, Title: "New event"}
	targeted := &domain.Notification{Type: domain.NotificationRequestApproved, Title: "Approved", UserID: &alice}
	forBob := &domain.Notification{Type: domain.NotificationRequestRejected, Title: "Rejected", UserID: &bob}
	for _, n := range []*domain.Notification{broadcast, targeted, forBob} {
		require.NoError(t, store.NotificationRepository.Create(ctx, n))
	}

	notes, total, err := store.NotificationRepository.ListForUser(ctx, alice, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), total)
	assert.Equal(t, targeted.ID, notes[0].ID)

	unread, _ := store.NotificationRepository.CountUnread(ctx, alice)
	assert.Equal(t, int32(2), unread)

	require.NoError(t, store.NotificationRepository.MarkAsRead(ctx, broadcast.ID, alice))
	require.NoError(t, store.NotificationRepository.MarkAsRead(ctx, broadcast.ID, alice))
	unread, _ = store.NotificationRepository.CountUnread(ctx, alice)
	assert.Equal(t, int32(1), unread)

	// Bob's view of the broadcast is unaffected by Alice reading it.
	unread, _ = store.NotificationRepository.CountUnread(ctx, bob)
	assert.Equal(t, int32(2), unread)

	require.NoError(t, store.NotificationRepository.MarkAllAsRead(ctx, alice))
	unread, _ = store.NotificationRepository.CountUnread(ctx, alice)
	assert.Equal(t, int32(0), unread)

	page, total, _ := store.NotificationRepository.ListForUser(ctx, alice, 1, 1)
	assert.Equal(t, int32(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, broadcast.ID, page[0].ID)
	assert.True(t, page[0].IsRead)
}

func TestUserDelete_CascadesOwnedRows(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "gone@test.org")
	e, roles := seedEvent(t, store, 2)

	require.NoError(t, store.VolunteerRequestRepository.CreateWithinCapacity(ctx, &domain.VolunteerRequest{UserID: u.ID, EventID: e.ID, RoleID: &roles[0].ID}))
	require.NoError(t, store.NotificationRepository.Create(ctx, &domain.Notification{Title: "hi", UserID: &u.ID}))

	assert.ErrorIs(t, store.UserRepository.Create(ctx, &domain.User{Email: "GONE@test.org"}), repository.ErrDuplicate)
	require.NoError(t, store.UserRepository.Delete(ctx, u.ID))

	reqs, _ := store.VolunteerRequestRepository.ListByUser(ctx, u.ID)
	assert.Empty(t, reqs)
	_, total, _ := store.NotificationRepository.ListForUser(ctx, u.ID, 10, 0)
	assert.Equal(t, int32(0), total)
}
