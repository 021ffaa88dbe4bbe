package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func scanNotification(row interface{ Scan(...any) error }, n *domain.Notification, extra ...any) error {
	var refType sql.NullString
	var refID, userID sql.NullInt32
	dest := append([]any{&n.ID, &n.Type, &n.Title, &n.Message, &refType, &refID, &userID, &n.CreatedOn}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if refType.Valid {
		rt := domain.ReferenceType(refType.String)
		n.ReferenceType = &rt
	}
	if refID.Valid {
		n.ReferenceID = &refID.Int32
	}
	if userID.Valid {
		n.UserID = &userID.Int32
	}
	return nil
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "userID", n.UserID, "type", n.Type, "title", n.Title)

	n.CreatedOn = time.Now().UTC()
	query := `INSERT INTO notifications (type, title, message, reference_type, reference_id, user_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	logger.DatabaseCall("INSERT", "notifications", "userID", n.UserID)
	err := r.db.QueryRowContext(ctx, query, n.Type, n.Title, n.Message, n.ReferenceType, n.ReferenceID, n.UserID, n.CreatedOn).Scan(&n.ID)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "userID", n.UserID)
		return translate(err)
	}
	logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int32) (*domain.Notification, error) {
	n := &domain.Notification{}
	query := `SELECT id, type, title, message, reference_type, reference_id, user_id, created_on FROM notifications WHERE id = $1`
	if err := scanNotification(r.db.QueryRowContext(ctx, query, id), n); err != nil {
		return nil, translate(err)
	}
	return n, nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	query := `SELECT n.id, n.type, n.title, n.message, n.reference_type, n.reference_id, n.user_id, n.created_on,
	                 (nr.user_id IS NOT NULL) AS is_read
	          FROM notifications n
	          LEFT JOIN notification_reads nr ON nr.notification_id = n.id AND nr.user_id = $1
	          WHERE n.user_id = $1 OR n.user_id IS NULL
	          ORDER BY n.created_on DESC, n.id DESC LIMIT $2 OFFSET $3`
	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE user_id = $1 OR user_id IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := scanNotification(rows, &n, &n.IsRead); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int32) (int32, error) {
	query := `SELECT count(*) FROM notifications n
	          WHERE (n.user_id = $1 OR n.user_id IS NULL)
	            AND NOT EXISTS (SELECT 1 FROM notification_reads nr WHERE nr.notification_id = n.id AND nr.user_id = $1)`
	var count int32
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

// MarkAsRead records that userID has read the notification. Repeated calls are no-ops.
func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationID, userID int32) error {
	query := `INSERT INTO notification_reads (user_id, notification_id, read_on) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, notification_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, notificationID, time.Now().UTC())
	return translate(err)
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int32) error {
	query := `INSERT INTO notification_reads (user_id, notification_id, read_on)
	          SELECT $1, n.id, $2 FROM notifications n WHERE n.user_id = $1 OR n.user_id IS NULL
	          ON CONFLICT (user_id, notification_id) DO NOTHING`
	result, err := r.db.ExecContext(ctx, query, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	logger.DatabaseResult("INSERT", rows, nil, "table", "notification_reads", "userID", userID)
	return nil
}
