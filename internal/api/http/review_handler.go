package http

import (
	"context"
	"net/http"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/service"
)

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewFunc func(ctx context.Context, p *domain.Principal, id int32) error

// review adapts one id-addressed review operation to a handler.
func (h *ReviewHandler) review(fn reviewFunc, message string) http.HandlerFunc {
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

func (h *ReviewHandler) ApproveApplication() http.HandlerFunc {
	return h.review(h.reviews.ApproveApplication, "Application approved")
}

func (h *ReviewHandler) RejectApplication() http.HandlerFunc {
	return h.review(h.reviews.RejectApplication, "Application rejected")
}

func (h *ReviewHandler) ApproveRequest() http.HandlerFunc {
	return h.review(h.reviews.ApproveRequest, "Request approved")
}

func (h *ReviewHandler) RejectRequest() http.HandlerFunc {
	return h.review(h.reviews.RejectRequest, "Request rejected")
}

func (h *ReviewHandler) RemoveFromEvent() http.HandlerFunc {
	return h.review(h.reviews.RemoveFromEvent, "Volunteer removed from event")
}
