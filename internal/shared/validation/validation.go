// Package validation проверяет типизированные запросы до того,
// как они попадут в бизнес-логику.
//
// Обязательные поля помечаются тегом `validate:"required"`. Для строк
// пустая строка считается отсутствующим значением. В ошибке поля
// называются так же, как в JSON.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	serr "github.com/IvanChernomyrdin/credkeeper/internal/shared/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// в ошибках используем json-имена: firstName, а не FirstName
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct проверяет структуру v.
//
// Возвращает *errors.ValidationError со списком пустых полей
// в порядке их объявления или nil, если всё заполнено.
// Прочие ошибки валидатора (например, передан не struct) возвращаются как есть.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return serr.NewValidationError(fields...)
}
