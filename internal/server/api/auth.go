// HTTP-хендлеры регистрации и логина
package api

import (
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/metrics"
	serr "github.com/IvanChernomyrdin/credkeeper/internal/shared/errors"
	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна;
//   - 400 Bad Request: неверный JSON или отсутствуют поля;
//   - 409 Conflict: username или email уже заняты;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register user
// @Description  Creates a user. All six fields are required; the password is stored as an adaptive hash.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Register request"
// @Success      201 {object} models.RegisterResponse
// @Failure      400 {object} models.ErrorResponse "Missing field(s) or bad JSON"
// @Failure      409 {object} models.ErrorResponse "Username or email already exists"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req smodels.RegisterRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.Metrics.ObserveAuth(metrics.OpRegister, metrics.OutcomeInvalidInput)
		writeDecodeError(w, err)
		return
	}

	username, err := h.Svc.Auth.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			h.Metrics.ObserveAuth(metrics.OpRegister, metrics.OutcomeInvalidInput)
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrAlreadyExists):
			h.Metrics.ObserveAuth(metrics.OpRegister, metrics.OutcomeConflict)
			WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
		default:
			h.Metrics.ObserveAuth(metrics.OpRegister, metrics.OutcomeError)
			h.internalError(w, r, "register failed", err)
		}
		return
	}

	h.Metrics.ObserveAuth(metrics.OpRegister, metrics.OutcomeOK)
	WriteJSON(w, http.StatusCreated, smodels.RegisterResponse{
		Status:   smodels.StatusOK,
		Username: username,
	})
}

// Login обрабатывает вход пользователя.
//
// Ответы:
//   - 200 OK: успешный вход, в теле профиль без хэша пароля;
//   - 400 Bad Request: неверный JSON или отсутствуют поля;
//   - 401 Unauthorized: одно и то же тело и для неизвестного username, и для неверного пароля;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Verifies credentials and returns the user profile.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} models.ErrorResponse "Missing field(s) or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Invalid username or password"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req smodels.LoginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.Metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeInvalidInput)
		writeDecodeError(w, err)
		return
	}

	profile, err := h.Svc.Auth.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			h.Metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeInvalidInput)
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrInvalidCredentials):
			h.Metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeInvalidCredentials)
			WriteError(w, http.StatusUnauthorized, serr.ErrInvalidCredentials)
		default:
			h.Metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeError)
			h.internalError(w, r, "login failed", err)
		}
		return
	}

	h.Metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeOK)
	WriteJSON(w, http.StatusOK, smodels.LoginResponse{
		Status: smodels.StatusOK,
		User:   profile,
	})
}
