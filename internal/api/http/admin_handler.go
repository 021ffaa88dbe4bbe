package http

import (
	"context"
	"net/http"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/service"
)

type AdminHandler struct {
	admin     service.AdminService
	dashboard service.DashboardService
}

func NewAdminHandler(admin service.AdminService, dashboard service.DashboardService) *AdminHandler {
	return &AdminHandler{admin: admin, dashboard: dashboard}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboard.Overview(r.Context(), PrincipalFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, overview)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context(), PrincipalFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, users)
}

type updateRoleRequest struct {
	Role domain.UserRole `json:"role"`
}

func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var body updateRoleRequest
	if err := decodeJSON(w, r, &body); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.admin.UpdateUserRole(r.Context(), PrincipalFromContext(r.Context()), id, body.Role); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, "Role updated")
}

type userAction func(ctx context.Context, p *domain.Principal, userID int32) error

func (h *AdminHandler) userAction(fn userAction, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, r, err)
			return
		}
		if err := fn(r.Context(), PrincipalFromContext(r.Context()), id); err != nil {
			respondError(w, r, err)
			return
		}
		respondMessage(w, message)
	}
}

func (h *AdminHandler) BanUser() http.HandlerFunc {
	return h.userAction(h.admin.BanUser, "User banned")
}

func (h *AdminHandler) UnbanUser() http.HandlerFunc {
	return h.userAction(h.admin.UnbanUser, "User unbanned")
}

func (h *AdminHandler) MakeAdmin() http.HandlerFunc {
	return h.userAction(h.admin.MakeAdmin, "User is now an admin")
}

func (h *AdminHandler) RemoveAdmin() http.HandlerFunc {
	return h.userAction(h.admin.RemoveAdmin, "Admin access removed")
}

func (h *AdminHandler) DeleteUser() http.HandlerFunc {
	return h.userAction(h.admin.DeleteUser, "User deleted")
}

func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	statuses, err := queryStatuses(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if len(statuses) > 1 {
		respondError(w, r, domain.Invalid("Only one status filter is supported"))
		return
	}
	var status domain.RequestStatus
	if len(statuses) == 1 {
		status = statuses[0]
	}
	forms, err := h.admin.ListApplications(r.Context(), PrincipalFromContext(r.Context()), status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, forms)
}

func (h *AdminHandler) ListEventRequests(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	statuses, err := queryStatuses(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	reqs, err := h.admin.ListEventRequests(r.Context(), PrincipalFromContext(r.Context()), eventID, statuses...)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, reqs)
}
