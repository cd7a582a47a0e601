// Package models содержит JSON-модели HTTP API, общие для сервера и CLI-клиента.
package models

// Статус успешного ответа
const StatusOK = "ok"

// RegisterRequest — запрос на регистрацию пользователя.
//
// Используется в:
//
//	POST /api/auth/register
//
// Все шесть полей обязательны, пустая строка считается отсутствующим полем.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Email     string `json:"email" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

// RegisterResponse — ответ на успешную регистрацию.
//
//	{"status":"ok","username":"alice"}
type RegisterResponse struct {
	Status   string `json:"status"`
	Username string `json:"username"`
}

// LoginRequest — запрос на вход.
//
// Используется в:
//
//	POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserProfile — публичный профиль пользователя.
//
// Хэша пароля здесь нет и быть не должно.
type UserProfile struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// LoginResponse — ответ на успешный вход.
type LoginResponse struct {
	Status string      `json:"status"`
	User   UserProfile `json:"user"`
}

// StatusResponse — ответ без данных, например на health-check.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse — тело любого ответа с ошибкой.
//
//	{"error":"Invalid username or password"}
type ErrorResponse struct {
	Error string `json:"error"`
}
