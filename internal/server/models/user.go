// Серверная модель пользователя
package models

import (
	"time"

	"github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

// User — строка таблицы users.
//
// PasswordHash не сериализуется и наружу не отдаётся, для ответов есть Profile.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string `json:"-"`
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
}

// Profile возвращает публичный профиль без хэша пароля.
func (u User) Profile() models.UserProfile {
	return models.UserProfile{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
