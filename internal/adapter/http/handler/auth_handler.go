package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hostelconnect/hostel-service/internal/adapter/http/middleware"
	"github.com/hostelconnect/hostel-service/internal/identity/usecase"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
)

type AuthHandler struct {
	identity *usecase.IdentityUsecase
	log      *logger.Logger
}

func NewAuthHandler(identity *usecase.IdentityUsecase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, log: log.Named("AuthHandler")}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserType string `json:"userType"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserType string `json:"userType"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	UserType  string    `json:"userType"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.identity.Register(r.Context(), req.Username, req.Password, req.UserType, req.Email); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.identity.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{
		Token:    result.Token,
		Username: result.Username,
		UserType: result.UserType,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.identity.CurrentUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		UserType:  user.UserType,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
