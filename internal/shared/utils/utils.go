// Утилитарные функции общего назначения
package utils

// Ptr возвращает указатель на копию v.
func Ptr[T any](v T) *T {
	return &v
}
