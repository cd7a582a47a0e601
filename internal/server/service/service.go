// Package service содержит бизнес-логику приложения (credkeeper).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Health HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth   *AuthService
	Health HealthRepo
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хеширования пароля).
func NewServices(repos Repositories, cfg *config.Config) (*Services, error) {
	hasher, err := crypto.NewHasher(cfg.Password.Hasher, cfg.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	})
	if err != nil {
		return nil, err
	}

	auth, err := NewAuthService(repos.Users, hasher)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:   auth,
		Health: repos.Health,
	}, nil
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — репозиторий пользователей (нужен для register/login).
type UsersRepo interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}
