package http

import (
	"net/http"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/service"
)

type ContactHandler struct {
	contact service.ContactService
}

func NewContactHandler(contact service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := decodeJSON(w, r, &msg); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.contact.Submit(r.Context(), &msg); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, "Message sent")
}
