package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies workflow failures.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindForbidden        ErrorKind = "FORBIDDEN"
	KindUnauthenticated  ErrorKind = "UNAUTHENTICATED"
	KindInvalid          ErrorKind = "INVALID"
	KindCapacityExceeded ErrorKind = "CAPACITY_EXCEEDED"
	KindConflict         ErrorKind = "CONFLICT"
	KindUpstreamFailure  ErrorKind = "UPSTREAM_FAILURE"
	KindPartiallyApplied ErrorKind = "PARTIALLY_APPLIED"
)

// Error is returned by every workflow. Message is safe to show to users.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and message, so sentinel
// values below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrNotAuthenticated     = &Error{Kind: KindUnauthenticated, Message: "Not authenticated"}
	ErrAdminRequired        = &Error{Kind: KindForbidden, Message: "Admin access required"}
	ErrRoleNotFound         = &Error{Kind: KindNotFound, Message: "Role not found"}
	ErrRoleFull             = &Error{Kind: KindCapacityExceeded, Message: "This role is full"}
	ErrDuplicateRequest     = &Error{Kind: KindConflict, Message: "You have already requested this role"}
	ErrRequestNotFound      = &Error{Kind: KindNotFound, Message: "Volunteer request not found"}
	ErrRequestReviewed      = &Error{Kind: KindConflict, Message: "Volunteer request has already been reviewed"}
	ErrEventNotFound        = &Error{Kind: KindNotFound, Message: "Event not found"}
	ErrApplicationNotFound  = &Error{Kind: KindNotFound, Message: "Application not found"}
	ErrApplicationReviewed  = &Error{Kind: KindConflict, Message: "Application has already been reviewed"}
	ErrApplicationSubmitted = &Error{Kind: KindConflict, Message: "Application already submitted"}
	ErrUserNotFound         = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrNotificationNotFound = &Error{Kind: KindNotFound, Message: "Notification not found"}
	ErrSelfModification     = &Error{Kind: KindForbidden, Message: "You cannot change your own account"}
	ErrUserBanned           = &Error{Kind: KindForbidden, Message: "Your account has been banned"}
)

// Invalid builds a validation error.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a store or collaborator failure, passing its text through.
func Upstream(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Kind: KindUpstreamFailure, Message: err.Error(), Err: err}
}

// PartiallyApplied marks a failure after some writes could not be undone.
func PartiallyApplied(msg string, err error) *Error {
	return &Error{Kind: KindPartiallyApplied, Message: msg, Err: err}
}

// KindOf classifies err; errors not produced by a workflow count as upstream failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUpstreamFailure
}
