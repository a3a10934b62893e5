package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hostelconnect/hostel-service/internal/adapter/http/middleware"
	"github.com/hostelconnect/hostel-service/internal/hostel/domain"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/hostelconnect/hostel-service/internal/platform/metrics"
)

const (
	maxUploadFiles    = 5
	maxUploadMemory   = 32 << 20
	uploadedFormField = "images"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadHandler accepts photo uploads ahead of hostel create/update calls.
// Files land in object storage; the caller references them by identifier.
type UploadHandler struct {
	storage domain.PhotoStorage
	metrics *metrics.MetricsManager
	log     *logger.Logger
}

func NewUploadHandler(storage domain.PhotoStorage, mm *metrics.MetricsManager, log *logger.Logger) *UploadHandler {
	return &UploadHandler{storage: storage, metrics: mm, log: log.Named("UploadHandler")}
}

type uploadResponse struct {
	Images []photoDTO `json:"images"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	_, userType, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !strings.EqualFold(userType, "owner") {
		respondMessage(w, http.StatusForbidden, "Not authorized")
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := r.MultipartForm.File[uploadedFormField]
	if len(files) == 0 {
		respondMessage(w, http.StatusBadRequest, "No images provided")
		return
	}
	if len(files) > maxUploadFiles {
		respondMessage(w, http.StatusBadRequest, "A maximum of 5 images can be uploaded")
		return
	}
	for _, header := range files {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedImageExtensions[ext] {
			respondMessage(w, http.StatusBadRequest, "Only jpg, jpeg and png images are allowed")
			return
		}
	}

	images := make([]photoDTO, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Could not read uploaded file")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Could not read uploaded file")
			return
		}
		photo, err := h.storage.Upload(r.Context(), header.Filename, data)
		if err != nil {
			h.log.Error("photo upload failed", zap.Error(err))
			respondMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		if h.metrics != nil {
			h.metrics.PhotoUploadsTotal.Inc()
		}
		images = append(images, photoDTO{URL: photo.URL, Identifier: photo.Identifier})
	}
	respondJSON(w, http.StatusOK, uploadResponse{Images: images})
}

// Delete removes a previously uploaded photo by its storage identifier.
// Identifiers contain path separators, so the route captures them with a
// wildcard rather than a plain parameter.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, userType, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !strings.EqualFold(userType, "owner") {
		respondMessage(w, http.StatusForbidden, "Not authorized")
		return
	}
	identifier := chi.URLParam(r, "*")
	if identifier == "" {
		respondMessage(w, http.StatusBadRequest, "Missing identifier")
		return
	}
	if err := h.storage.Delete(r.Context(), identifier); err != nil {
		h.log.Error("photo delete failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondMessage(w, http.StatusOK, "Image deleted successfully")
}
