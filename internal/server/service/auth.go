package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/credkeeper/internal/shared/errors"
	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
	"github.com/IvanChernomyrdin/credkeeper/internal/shared/validation"
)

// пароль для хэша-заглушки, с которым сверяемся, когда пользователя нет
const dummyPassword = "credkeeper-timing-equalizer"

// AuthService реализует регистрацию и проверку учётных данных.
//
// Состояния между запросами нет: каждый вызов — одна операция с хранилищем.
type AuthService struct {
	users  UsersRepo
	hasher crypto.Hasher

	// хэш-заглушка: Login тратит на несуществующего пользователя
	// столько же времени, сколько на неверный пароль
	dummyHash string
}

// NewAuthService создаёт AuthService с репозиторием пользователей и алгоритмом хэширования.
func NewAuthService(users UsersRepo, hasher crypto.Hasher) (*AuthService, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		dummyHash: dummy,
	}, nil
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - все шесть полей обязательны, пустая строка = поле отсутствует
//
// Возвращает:
//   - username созданного пользователя
//   - *ValidationError (ErrInvalidInput) при пустых полях или слишком длинном пароле
//   - ErrAlreadyExists если username или email уже заняты
func (s *AuthService) Register(ctx context.Context, req smodels.RegisterRequest) (string, error) {
	if err := validation.Struct(req); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", serr.ErrInvalidInput, err)
		}
		return "", fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}

	// уникальность проверяет БД, а не предварительный SELECT:
	// так две одновременные регистрации не проскочат обе
	_, err = s.users.Create(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	})
	if err != nil {
		return "", err
	}

	return req.Username, nil
}

// Login проверяет учётные данные и возвращает профиль пользователя.
//
// Поведение:
//   - не раскрывает факт существования username: и "нет пользователя",
//     и "неверный пароль" дают ErrInvalidCredentials
//   - хэш пароля в профиль не попадает
//
// Ошибки:
//   - *ValidationError (ErrInvalidInput)
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, req smodels.LoginRequest) (smodels.UserProfile, error) {
	if err := validation.Struct(req); err != nil {
		return smodels.UserProfile{}, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			// результат не важен, нужна только потраченная работа
			_, _ = s.hasher.Verify(req.Password, s.dummyHash)
			return smodels.UserProfile{}, serr.ErrInvalidCredentials
		}
		return smodels.UserProfile{}, err
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return smodels.UserProfile{}, fmt.Errorf("%w: verify password: %v", serr.ErrInternal, err)
	}
	if !ok {
		return smodels.UserProfile{}, serr.ErrInvalidCredentials
	}

	return user.Profile(), nil
}
