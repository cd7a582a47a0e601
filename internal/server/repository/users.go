// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/credkeeper/internal/shared/errors"
)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

// UsersRepository хранит пользователей в таблице users.
//
// Уникальность username и email обеспечивают UNIQUE-ограничения таблицы,
// репозиторий только переводит их нарушение в ErrAlreadyExists.
type UsersRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// WithQueryTimeout ограничивает каждый запрос к БД таймаутом d. 0 — без ограничения.
func (r *UsersRepository) WithQueryTimeout(d time.Duration) *UsersRepository {
	r.queryTimeout = d
	return r
}

func (r *UsersRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Create вставляет пользователя в отдельной транзакции и возвращает user_id.
//
// Либо строка фиксируется целиком, либо транзакция откатывается.
// Ошибки:
//   - ErrAlreadyExists, если username или email уже заняты;
//   - ErrInternal (с причиной в тексте) при прочих ошибках БД.
func (r *UsersRepository) Create(ctx context.Context, u models.User) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx: %v", serr.ErrInternal, err)
	}
	// после Commit откат ничего не делает
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, first_name, last_name, phone)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING user_id`,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, serr.ErrAlreadyExists
		}
		return 0, fmt.Errorf("%w: insert user: %v", serr.ErrInternal, err)
	}

	if err := tx.Commit(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, serr.ErrAlreadyExists
		}
		return 0, fmt.Errorf("%w: commit: %v", serr.ErrInternal, err)
	}

	return id, nil
}

// GetByUsername ищет пользователя по точному совпадению username.
//
// Ошибки:
//   - ErrNotFound, если пользователя нет;
//   - ErrInternal при ошибке БД.
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, username, email, password_hash, first_name, last_name, phone, created_at
		 FROM users
		 WHERE username=$1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, fmt.Errorf("%w: select user: %v", serr.ErrInternal, err)
	}

	return u, nil
}

// Ping проверяет доступность БД.
func (r *UsersRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", serr.ErrUnavailable, err)
	}
	return nil
}
