// В этом файле описаны методы клиента для работы
// с эндпоинтами аутентификации: регистрация, вход и health-check.
package api

import (
	"context"

	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

// Пути эндпоинтов сервера
const (
	RegisterPath = "/api/auth/register"
	LoginPath    = "/api/auth/login"
	HealthPath   = "/api/health"
)

// Register регистрирует пользователя на сервере.
//
// Отправляет POST на /api/auth/register. Возвращает username из ответа.
func (c *Client) Register(ctx context.Context, req smodels.RegisterRequest) (smodels.RegisterResponse, error) {
	var resp smodels.RegisterResponse
	err := c.PostJSON(ctx, RegisterPath, req, &resp)
	return resp, err
}

// Login проверяет учётные данные и возвращает профиль пользователя.
func (c *Client) Login(ctx context.Context, username, password string) (smodels.UserProfile, error) {
	var resp smodels.LoginResponse
	err := c.PostJSON(ctx, LoginPath, smodels.LoginRequest{Username: username, Password: password}, &resp)
	return resp.User, err
}

// Health возвращает nil, если сервер и его хранилище доступны.
func (c *Client) Health(ctx context.Context) error {
	var resp smodels.StatusResponse
	return c.GetJSON(ctx, HealthPath, &resp)
}
