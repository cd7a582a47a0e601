// Логирование HTTP-запросов
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/metrics"
	"github.com/IvanChernomyrdin/credkeeper/internal/shared/logger"
)

type ResponseWriter struct {
	http.ResponseWriter
	Status int
	Size   int
}

func (w *ResponseWriter) WriteHeader(Status int) {
	w.Status = Status
	w.ResponseWriter.WriteHeader(Status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.Status == 0 {
		w.Status = http.StatusOK
	}
	Size, err := w.ResponseWriter.Write(b)
	w.Size += Size
	return Size, err
}

// LoggerMiddleware пишет access-лог и длительность запроса в метрики.
// m может быть nil.
func LoggerMiddleware(log *logger.HTTPLogger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wr := &ResponseWriter{ResponseWriter: w}
			next.ServeHTTP(wr, r)

			if wr.Status == 0 {
				wr.Status = http.StatusOK
			}
			elapsed := time.Since(start)

			log.LogRequest(r.Method, r.RequestURI, wr.Status, wr.Size,
				elapsed.Seconds()*1000, RequestIDFromContext(r.Context()))
			m.ObserveRequest(r.Method, routePattern(r), wr.Status, elapsed)
		})
	}
}

// шаблон маршрута chi известен только после роутинга
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
