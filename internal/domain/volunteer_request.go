package domain

import (
	"fmt"
	"strings"
	"time"
)

// RequestStatus is the review state shared by volunteer requests and applications.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// ParseRequestStatus accepts any casing ("Pending", "APPROVED") and returns
// the canonical value.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch st := RequestStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown request status %q", s)
}

// IsActive reports whether a request in this status occupies a role seat.
func (s RequestStatus) IsActive() bool {
	return s == RequestStatusPending || s == RequestStatusApproved
}

// IsFinal reports whether no further review transition is allowed.
func (s RequestStatus) IsFinal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// ActiveRequestStatuses lists the statuses counted against role capacity.
var ActiveRequestStatuses = []RequestStatus{RequestStatusPending, RequestStatusApproved}

type VolunteerRequest struct {
	ID        int32         `json:"id"`
	UserID    int32         `json:"user_id"`
	EventID   int32         `json:"event_id"`
	RoleID    *int32        `json:"role_id"`
	Status    RequestStatus `json:"status"`
	CreatedOn time.Time     `json:"created_on"`

	// Populated by listing queries that embed the related rows.
	UserName   string `json:"user_name,omitempty"`
	UserEmail  string `json:"user_email,omitempty"`
	EventTitle string `json:"event_title,omitempty"`
	RoleName   string `json:"role_name,omitempty"`
}
