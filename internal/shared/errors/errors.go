// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
	"strings"
)

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные. Одно сообщение и для "нет такого пользователя",
	// и для "неверный пароль"
	ErrInvalidCredentials = errors.New("Invalid username or password")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Тело запроса больше server.max_body_bytes
	ErrBodyTooLarge = errors.New("request body too large")
	// Ресурс уже существует (username или email уже заняты)
	ErrAlreadyExists = errors.New("Username or email already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Хранилище недоступно
	ErrUnavailable = errors.New("store unavailable")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)

// ValidationError — ошибка валидации запроса с перечнем отсутствующих полей.
//
// Fields содержит JSON-имена полей в порядке их объявления в запросе.
// errors.Is(err, ErrInvalidInput) для неё возвращает true.
type ValidationError struct {
	Fields []string
}

// NewValidationError создаёт ошибку валидации для переданных полей.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "Missing field(s): " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
