// Package http реализует маршрутизацию HTTP-слоя сервера credkeeper.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - подключение middleware: request id, логирование, recover, CORS;
//   - публикацию /metrics и swagger.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/middleware"
)

// Options — необязательные части роутера.
type Options struct {
	CORS config.CORSConfig
	// MetricsPath пустой — /metrics не публикуется
	MetricsPath string
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - эндпоинты аутентификации под префиксом /api/auth;
//   - /api/health;
//   - middleware request id и логирования для всех запросов.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log, h.Metrics))
	// паника в хендлере -> 500, сервер живёт дальше
	r.Use(chimw.Recoverer)

	if opts.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.HeaderXRequestID},
			ExposedHeaders: []string{middleware.HeaderXRequestID},
			MaxAge:         opts.CORS.MaxAge,
		}))
	}

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.MetricsPath != "" && h.Metrics != nil {
		r.Method(http.MethodGet, opts.MetricsPath, h.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})
	})

	return r
}
