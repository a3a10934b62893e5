package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hostelconnect/hostel-service/internal/adapter/http/middleware"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/hostelconnect/hostel-service/internal/platform/metrics"
	"github.com/hostelconnect/hostel-service/internal/review/usecase"
)

type ReviewHandler struct {
	reviews *usecase.ReviewUsecase
	metrics *metrics.MetricsManager
	log     *logger.Logger
}

func NewReviewHandler(reviews *usecase.ReviewUsecase, mm *metrics.MetricsManager, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, metrics: mm, log: log.Named("ReviewHandler")}
}

type addReviewRequest struct {
	// Older clients post the hostel reference as "hostel"; both keys are
	// accepted.
	Hostel   string `json:"hostel"`
	HostelID string `json:"hostelId"`
	Rating   int32  `json:"rating"`
	Comment  string `json:"comment"`
}

func (r addReviewRequest) hostelID() string {
	if r.Hostel != "" {
		return r.Hostel
	}
	return r.HostelID
}

// ListForHostel handles GET /api/reviews/hostel/{hostelID}, newest first.
func (h *ReviewHandler) ListForHostel(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListForHostel(r.Context(), chi.URLParam(r, "hostelID"))
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, reviewToResponse(review))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, userType, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	actor := usecase.Actor{UserID: userID, UserType: userType}
	review, err := h.reviews.Add(r.Context(), actor, req.hostelID(), req.Rating, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ReviewsCreatedTotal.Inc()
	}
	respondJSON(w, http.StatusCreated, reviewToResponse(review))
}
