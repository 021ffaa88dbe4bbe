package http

import (
	"net/http"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/service"
)

type VolunteerHandler struct {
	volunteers service.VolunteerService
}

func NewVolunteerHandler(volunteers service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{volunteers: volunteers}
}

func (h *VolunteerHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.volunteers.ListMyRequests(r.Context(), PrincipalFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, reqs)
}

func (h *VolunteerHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.volunteers.CancelRequest(r.Context(), PrincipalFromContext(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, "Request cancelled")
}

func (h *VolunteerHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var form domain.VolunteerForm
	if err := decodeJSON(w, r, &form); err != nil {
		respondError(w, r, err)
		return
	}
	saved, err := h.volunteers.SubmitApplication(r.Context(), PrincipalFromContext(r.Context()), &form)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: "Application submitted", Data: saved})
}

func (h *VolunteerHandler) MyApplication(w http.ResponseWriter, r *http.Request) {
	form, err := h.volunteers.GetMyApplication(r.Context(), PrincipalFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, form)
}
