package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
	"github.com/Sama2511/LJM-sub000/internal/repository/postgres"
)

var pqUniqueViolation = pq.Error{Code: "23505", Constraint: "volunteer_forms_user_id_key"}

func TestNotificationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Broadcast", func(t *testing.T) {
		ref := domain.ReferenceEvent
		n := &domain.Notification{Type: domain.NotificationEventCreated, Title: "New event", Message: "Food drive", ReferenceType: &ref, ReferenceID: int32Ptr(4)}

		mock.ExpectQuery("INSERT INTO notifications").
			WithArgs("event_created", "New event", "Food drive", "event", int32(4), nil, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(50))

		assert.NoError(t, repo.Create(ctx, n))
		assert.Equal(t, int32(50), n.ID)
		assert.True(t, n.IsBroadcast())
	})

	t.Run("Targeted", func(t *testing.T) {
		n := &domain.Notification{Type: domain.NotificationRemovedFromEvent, Title: "Removed", Message: "You have been removed from Food drive", UserID: int32Ptr(7)}

		mock.ExpectQuery("INSERT INTO notifications").
			WithArgs("removed_from_event", "Removed", n.Message, nil, nil, int32(7), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(51))

		assert.NoError(t, repo.Create(ctx, n))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ListForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	cols := []string{"id", "type", "title", "message", "reference_type", "reference_id", "user_id", "created_on", "is_read"}

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM notifications WHERE user_id = \\$1 OR user_id IS NULL").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("ORDER BY n.created_on DESC, n.id DESC LIMIT").
		WithArgs(int32(7), int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(51, "request_approved", "Approved", "msg", "request", 30, 7, time.Now(), false).
			AddRow(50, "event_created", "New event", "msg", nil, nil, nil, time.Now(), true))

	notes, total, err := repo.ListForUser(context.Background(), 7, 20, 0)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), total)
	assert.Len(t, notes, 2)
	assert.False(t, notes[0].IsRead)
	assert.Equal(t, domain.ReferenceRequest, *notes[0].ReferenceType)
	assert.True(t, notes[1].IsRead)
	assert.True(t, notes[1].IsBroadcast())
	assert.Nil(t, notes[1].ReferenceID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ReadState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO notification_reads (.+) ON CONFLICT \\(user_id, notification_id\\) DO NOTHING").
		WithArgs(int32(7), int32(50), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkAsRead(ctx, 50, 7))

	mock.ExpectExec("INSERT INTO notification_reads (.+) SELECT \\$1, n.id, \\$2 FROM notifications n").
		WithArgs(int32(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	assert.NoError(t, repo.MarkAllAsRead(ctx, 7))

	mock.ExpectQuery("NOT EXISTS").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	count, err := repo.CountUnread(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int32(0), count)

	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE id = \\$1").
		WithArgs(int32(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
