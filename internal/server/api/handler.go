// Package api реализует HTTP-слой сервера credkeeper.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/metrics"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/service"
	serr "github.com/IvanChernomyrdin/credkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/credkeeper/internal/shared/logger"
	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// DefaultMaxBodyBytes — лимит тела запроса, если в конфиге не задан.
const DefaultMaxBodyBytes int64 = 1 << 20

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Metrics: счётчики исходов register/login (может быть nil).
type Handler struct {
	Svc          *service.Services
	Log          *logger.HTTPLogger
	Metrics      *metrics.Metrics
	MaxBodyBytes int64
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, m *metrics.Metrics, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		Svc:          svc,
		Log:          log,
		Metrics:      m,
		MaxBodyBytes: maxBodyBytes,
	}
}

// WriteJSON пишет v как JSON с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	WriteJSON(w, status, smodels.ErrorResponse{
		Error: err.Error(),
	})
}

// decodeJSON читает тело с ограничением по размеру.
// Возвращает ErrBodyTooLarge или ErrBadJSON.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return serr.ErrBodyTooLarge
		}
		return serr.ErrBadJSON
	}
	return nil
}

// writeDecodeError отвечает на ошибку decodeJSON
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, serr.ErrBodyTooLarge) {
		WriteError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	WriteError(w, http.StatusBadRequest, err)
}

// internalError логирует причину и отвечает клиенту обезличенным 500
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Log.Logger.Sugar().Errorw(msg,
		"error", err,
		"request_id", middleware.RequestIDFromContext(r.Context()),
	)
	WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
}
