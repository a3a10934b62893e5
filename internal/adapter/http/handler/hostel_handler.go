package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hostelconnect/hostel-service/internal/adapter/http/middleware"
	"github.com/hostelconnect/hostel-service/internal/hostel/domain"
	"github.com/hostelconnect/hostel-service/internal/hostel/usecase"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/hostelconnect/hostel-service/internal/platform/metrics"
)

type HostelHandler struct {
	hostels *usecase.HostelUsecase
	metrics *metrics.MetricsManager
	log     *logger.Logger
}

func NewHostelHandler(hostels *usecase.HostelUsecase, mm *metrics.MetricsManager, log *logger.Logger) *HostelHandler {
	return &HostelHandler{hostels: hostels, metrics: mm, log: log.Named("HostelHandler")}
}

type createHostelRequest struct {
	Name          string      `json:"name"`
	Address       *addressDTO `json:"address"`
	Price         *float64    `json:"price"`
	Amenities     []string    `json:"amenities"`
	Photos        []photoDTO  `json:"photos"`
	Availability  *bool       `json:"availability"`
	ContactNumber string      `json:"contactNumber"`
}

type updateHostelRequest struct {
	Name          *string     `json:"name"`
	Address       *addressDTO `json:"address"`
	Price         *float64    `json:"price"`
	Amenities     *[]string   `json:"amenities"`
	Photos        *[]photoDTO `json:"photos"`
	Availability  *bool       `json:"availability"`
	ContactNumber *string     `json:"contactNumber"`
}

// List handles GET /api/hostels with optional filter query parameters.
func (h *HostelHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseHostelFilter(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	hostels, err := h.hostels.Search(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]hostelResponse, 0, len(hostels))
	for _, hostel := range hostels {
		out = append(out, hostelToResponse(hostel))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *HostelHandler) Get(w http.ResponseWriter, r *http.Request) {
	hostel, err := h.hostels.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, hostelToResponse(hostel))
}

func (h *HostelHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req createHostelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	input := usecase.CreateHostelInput{
		Name:          req.Name,
		Price:         req.Price,
		Amenities:     req.Amenities,
		Photos:        photosFromDTO(req.Photos),
		Availability:  req.Availability,
		ContactNumber: req.ContactNumber,
	}
	if req.Address != nil {
		addr := addressFromDTO(*req.Address)
		input.Address = &addr
	}
	hostel, err := h.hostels.Create(r.Context(), actor, input)
	if err != nil {
		respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.HostelsCreatedTotal.Inc()
	}
	respondJSON(w, http.StatusCreated, hostelToResponse(hostel))
}

func (h *HostelHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req updateHostelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	input := usecase.UpdateHostelInput{
		Name:          req.Name,
		Price:         req.Price,
		Amenities:     req.Amenities,
		Availability:  req.Availability,
		ContactNumber: req.ContactNumber,
	}
	if req.Address != nil {
		addr := addressFromDTO(*req.Address)
		input.Address = &addr
	}
	if req.Photos != nil {
		photos := photosFromDTO(*req.Photos)
		input.Photos = &photos
	}
	hostel, err := h.hostels.Update(r.Context(), actor, chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.HostelUpdatesTotal.Inc()
	}
	respondJSON(w, http.StatusOK, hostelToResponse(hostel))
}

func (h *HostelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.hostels.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.HostelDeletesTotal.Inc()
	}
	respondMessage(w, http.StatusOK, "Hostel deleted successfully")
}

func actorFromRequest(r *http.Request) (usecase.Actor, bool) {
	userID, userType, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{UserID: userID, UserType: userType}, true
}

func parseHostelFilter(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	filter := domain.Filter{
		City:  q.Get("city"),
		State: q.Get("state"),
	}
	if raw := q.Get("priceMin"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Filter{}, errInvalidQueryParam("priceMin")
		}
		filter.PriceMin = &v
	}
	if raw := q.Get("priceMax"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Filter{}, errInvalidQueryParam("priceMax")
		}
		filter.PriceMax = &v
	}
	if raw := q.Get("zipcode"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Filter{}, errInvalidQueryParam("zipcode")
		}
		filter.Zipcode = &v
	}
	return filter, nil
}

type invalidQueryParamError string

func errInvalidQueryParam(name string) error {
	return invalidQueryParamError(name)
}

func (e invalidQueryParamError) Error() string {
	return "Invalid value for query parameter " + string(e)
}
