package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hostelconnect/hostel-service/internal/adapter/http/handler"
	"github.com/hostelconnect/hostel-service/internal/adapter/http/middleware"
	identityusecase "github.com/hostelconnect/hostel-service/internal/identity/usecase"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/hostelconnect/hostel-service/internal/platform/metrics"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Hostel *handler.HostelHandler
	Review *handler.ReviewHandler
	Upload *handler.UploadHandler
}

// New assembles the HTTP surface. Listing and reading hostels and reviews is
// public; everything that mutates state requires a valid session token.
func New(h Handlers, tokens *identityusecase.TokenManager, mm *metrics.MetricsManager, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log, mm))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Get("/hostels", h.Hostel.List)
		r.Get("/hostels/{id}", h.Hostel.Get)
		r.Get("/reviews/hostel/{hostelID}", h.Review.ListForHostel)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(tokens, log))

			r.Get("/auth/me", h.Auth.Me)

			r.Post("/hostels", h.Hostel.Create)
			r.Put("/hostels/{id}", h.Hostel.Update)
			r.Delete("/hostels/{id}", h.Hostel.Delete)

			r.Post("/reviews", h.Review.Add)

			r.Post("/upload/images", h.Upload.Upload)
			// object identifiers contain slashes, a wildcard captures them
			r.Delete("/upload/images/*", h.Upload.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
