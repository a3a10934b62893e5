package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/hostelconnect/hostel-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// RequestLogger logs every request with its status and duration, and records
// latency and error counts when a metrics manager is configured.
func RequestLogger(log *logger.Logger, mm *metrics.MetricsManager) func(http.Handler) http.Handler {
	reqLog := log.Named("HTTP")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			reqLog.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", elapsed),
			)

			if mm != nil {
				mm.HTTPRequestLatency.WithLabelValues(r.URL.Path, r.Method).Observe(elapsed.Seconds())
				if status >= 400 {
					mm.HTTPErrorsTotal.WithLabelValues(r.URL.Path, http.StatusText(status)).Inc()
				}
			}
		})
	}
}
