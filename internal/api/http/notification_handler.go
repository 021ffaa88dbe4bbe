package http

import (
	"net/http"

	"github.com/Sama2511/LJM-sub000/internal/service"
)

type NotificationHandler struct {
	notes service.NotificationService
}

func NewNotificationHandler(notes service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notes: notes}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt32(r, "limit", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	offset, err := queryInt32(r, "offset", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	notes, total, err := h.notes.List(r.Context(), PrincipalFromContext(r.Context()), limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, Page{Items: notes, Total: total})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notes.UnreadCount(r.Context(), PrincipalFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int32{"unread": count})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.notes.MarkAsRead(r.Context(), PrincipalFromContext(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, "Notification marked as read")
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.MarkAllAsRead(r.Context(), PrincipalFromContext(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, "All notifications marked as read")
}
