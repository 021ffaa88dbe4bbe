package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sama2511/LJM-sub000/internal/service"
)

// Pinger reports whether the entity store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the workflows exposed over HTTP.
type Services struct {
	Volunteer    service.VolunteerService
	Review       service.ReviewService
	Event        service.EventService
	Admin        service.AdminService
	Notification service.NotificationService
	Dashboard    service.DashboardService
	Contact      service.ContactService
}

type RouterConfig struct {
	RateLimitPerMinute int
	MaxUploadBytes     int64
}

func NewRouter(svcs Services, auth *AuthMiddleware, files FileOpener, store Pinger, cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	router.Use(recoverPanics, instrument)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", health(store)).Methods(http.MethodGet)
	router.HandleFunc("/api/files/{key:.+}", NewFileHandler(files).Download).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(rateLimit(cfg.RateLimitPerMinute), auth.Handler)

	events := NewEventHandler(svcs.Event, svcs.Volunteer, cfg.MaxUploadBytes)
	volunteers := NewVolunteerHandler(svcs.Volunteer)
	reviews := NewReviewHandler(svcs.Review)
	admin := NewAdminHandler(svcs.Admin, svcs.Dashboard)
	notes := NewNotificationHandler(svcs.Notification)
	contact := NewContactHandler(svcs.Contact)

	// Public
	api.HandleFunc("/events", events.List).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", events.Get).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}/capacity", events.Capacity).Methods(http.MethodGet)
	api.HandleFunc("/contact", contact.Submit).Methods(http.MethodPost)

	// Signed-in users
	api.HandleFunc("/events/{id:[0-9]+}/roles/{roleId:[0-9]+}/join", events.Join).Methods(http.MethodPost)
	api.HandleFunc("/me/requests", volunteers.MyRequests).Methods(http.MethodGet)
	api.HandleFunc("/me/requests/{id:[0-9]+}", volunteers.CancelRequest).Methods(http.MethodDelete)
	api.HandleFunc("/me/application", volunteers.MyApplication).Methods(http.MethodGet)
	api.HandleFunc("/me/application", volunteers.SubmitApplication).Methods(http.MethodPost)
	api.HandleFunc("/notifications", notes.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/unread-count", notes.UnreadCount).Methods(http.MethodGet)
	api.HandleFunc("/notifications/read-all", notes.MarkAllAsRead).Methods(http.MethodPost)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notes.MarkAsRead).Methods(http.MethodPost)

	// Admin
	adm := api.PathPrefix("/admin").Subrouter()
	adm.HandleFunc("/dashboard", admin.Dashboard).Methods(http.MethodGet)
	adm.HandleFunc("/events", events.Create).Methods(http.MethodPost)
	adm.HandleFunc("/events/{id:[0-9]+}", events.Update).Methods(http.MethodPut)
	adm.HandleFunc("/events/{id:[0-9]+}", events.Delete).Methods(http.MethodDelete)
	adm.HandleFunc("/events/{id:[0-9]+}/requests", admin.ListEventRequests).Methods(http.MethodGet)
	adm.HandleFunc("/requests/{id:[0-9]+}/approve", reviews.ApproveRequest()).Methods(http.MethodPost)
	adm.HandleFunc("/requests/{id:[0-9]+}/reject", reviews.RejectRequest()).Methods(http.MethodPost)
	adm.HandleFunc("/requests/{id:[0-9]+}", reviews.RemoveFromEvent()).Methods(http.MethodDelete)
	adm.HandleFunc("/applications", admin.ListApplications).Methods(http.MethodGet)
	adm.HandleFunc("/applications/{id:[0-9]+}/approve", reviews.ApproveApplication()).Methods(http.MethodPost)
	adm.HandleFunc("/applications/{id:[0-9]+}/reject", reviews.RejectApplication()).Methods(http.MethodPost)
	adm.HandleFunc("/users", admin.ListUsers).Methods(http.MethodGet)
	adm.HandleFunc("/users/{id:[0-9]+}", admin.DeleteUser()).Methods(http.MethodDelete)
	adm.HandleFunc("/users/{id:[0-9]+}/role", admin.UpdateUserRole).Methods(http.MethodPut)
	adm.HandleFunc("/users/{id:[0-9]+}/ban", admin.BanUser()).Methods(http.MethodPost)
	adm.HandleFunc("/users/{id:[0-9]+}/unban", admin.UnbanUser()).Methods(http.MethodPost)
	adm.HandleFunc("/users/{id:[0-9]+}/make-admin", admin.MakeAdmin()).Methods(http.MethodPost)
	adm.HandleFunc("/users/{id:[0-9]+}/remove-admin", admin.RemoveAdmin()).Methods(http.MethodPost)

	return router
}

func health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "store unavailable"})
			return
		}
		respondMessage(w, "ok")
	}
}
