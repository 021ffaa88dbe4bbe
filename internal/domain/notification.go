package domain

import "time"

type NotificationType string

const (
	NotificationEventCreated        NotificationType = "event_created"
	NotificationEventUpdated        NotificationType = "event_updated"
	NotificationEventCancelled      NotificationType = "event_cancelled"
	NotificationApplicationApproved NotificationType = "application_approved"
	NotificationApplicationRejected NotificationType = "application_rejected"
	NotificationRequestApproved     NotificationType = "request_approved"
	NotificationRequestRejected     NotificationType = "request_rejected"
	NotificationRemovedFromEvent    NotificationType = "removed_from_event"
)

type ReferenceType string

const (
	ReferenceEvent       ReferenceType = "event"
	ReferenceApplication ReferenceType = "application"
	ReferenceRequest     ReferenceType = "request"
)

// Notification is a feed entry. A nil UserID makes it a broadcast visible to
// every user; read state lives in NotificationRead, never on this row.
type Notification struct {
	ID            int32            `json:"id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	ReferenceType *ReferenceType   `json:"reference_type,omitempty"`
	ReferenceID   *int32           `json:"reference_id,omitempty"`
	UserID        *int32           `json:"user_id,omitempty"`
	CreatedOn     time.Time        `json:"created_on"`

	// IsRead is computed per reader when listing.
	IsRead bool `json:"is_read"`
}

// IsBroadcast reports whether the notification targets every user.
func (n *Notification) IsBroadcast() bool {
	return n.UserID == nil
}

// VisibleTo reports whether userID may see the notification.
func (n *Notification) VisibleTo(userID int32) bool {
	return n.UserID == nil || *n.UserID == userID
}

type NotificationRead struct {
	UserID         int32     `json:"user_id"`
	NotificationID int32     `json:"notification_id"`
	ReadOn         time.Time `json:"read_on"`
}
