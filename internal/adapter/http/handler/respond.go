package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	hosteldomain "github.com/hostelconnect/hostel-service/internal/hostel/domain"
	identitydomain "github.com/hostelconnect/hostel-service/internal/identity/domain"
	reviewdomain "github.com/hostelconnect/hostel-service/internal/review/domain"
)

// messageResponse is the body shape of every non-2xx response.
type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// collapses to a generic 500 so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identitydomain.ErrUsernameTaken):
		respondMessage(w, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, identitydomain.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, identitydomain.ErrUnauthorized):
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, identitydomain.ErrUserNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, identitydomain.ErrInvalidInput):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, hosteldomain.ErrHostelNotFound):
		respondMessage(w, http.StatusNotFound, "Hostel not found")
	case errors.Is(err, hosteldomain.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, hosteldomain.ErrInvalidHostelData):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, reviewdomain.ErrReviewAlreadyExists):
		respondMessage(w, http.StatusBadRequest, "You have already reviewed this hostel")
	case errors.Is(err, reviewdomain.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Hostel not found")
	case errors.Is(err, reviewdomain.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, reviewdomain.ErrInvalidInput):
		respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		respondMessage(w, http.StatusInternalServerError, "Server error")
	}
}
