// Хэширование паролей
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Поддерживаемые алгоритмы
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// DefaultBcryptCost — стоимость bcrypt по умолчанию (2^12 раундов).
const DefaultBcryptCost = 12

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrUnknownHasher   = errors.New("unknown password hasher")
	ErrInvalidHashForm = errors.New("invalid hash format")
	// bcrypt учитывает только первые 72 байта пароля
	ErrPasswordTooLong = errors.New("password is longer than 72 bytes")
)

const bcryptMaxPasswordLen = 72

// Hasher хэширует пароли медленным адаптивным алгоритмом со случайной солью
// и сверяет пароль с сохранённым хэшем за постоянное время.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify возвращает false без ошибки, если пароль не совпал.
	Verify(password, encoded string) (bool, error)
}

type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// NewHasher возвращает Hasher по имени алгоритма.
//
// Пустое имя означает bcrypt. cost <= 0 заменяется на DefaultBcryptCost.
func NewHasher(name string, cost int, p Argon2Params) (Hasher, error) {
	switch strings.ToLower(name) {
	case "", HasherBcrypt:
		return NewBcryptHasher(cost), nil
	case HasherArgon2id:
		return NewArgon2Hasher(p), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

// BcryptHasher — Hasher на bcrypt. Соль генерируется внутри bcrypt на каждый вызов.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > bcryptMaxPasswordLen {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, encoded string) (bool, error) {
	// длиннее 72 байт такой пароль не мог быть сохранён, а bcrypt сравнил бы только префикс
	if len(password) > bcryptMaxPasswordLen {
		if _, err := bcrypt.Cost([]byte(encoded)); err != nil {
			return false, ErrInvalidHashForm
		}
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, ErrInvalidHashForm
	}
	return true, nil
}

// Argon2Hasher — Hasher на argon2id.
type Argon2Hasher struct {
	p Argon2Params
}

func NewArgon2Hasher(p Argon2Params) *Argon2Hasher {
	if p.Time == 0 {
		p.Time = 3
	}
	if p.MemoryKiB == 0 {
		p.MemoryKiB = 64 * 1024
	}
	if p.Threads == 0 {
		p.Threads = 2
	}
	if p.KeyLen == 0 {
		p.KeyLen = 32
	}
	if p.SaltLen == 0 {
		p.SaltLen = 16
	}
	return &Argon2Hasher{p: p}
}

// Hash возвращает строку формата:
// argon2id$v=19$m=65536,t=3,p=2$<salt_b64>$<hash_b64>
func (h *Argon2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, h.p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, h.p.Time, h.p.MemoryKiB, h.p.Threads, h.p.KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf(
		"argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.p.MemoryKiB, h.p.Time, h.p.Threads,
		b64Salt, b64Hash,
	)
	return encoded, nil
}

func (h *Argon2Hasher) Verify(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != HasherArgon2id {
		return false, ErrInvalidHashForm
	}
	if parts[1] != fmt.Sprintf("v=%d", argon2.Version) {
		return false, ErrInvalidHashForm
	}

	// parts[1] = v=19
	// parts[2] = m=...,t=...,p=...
	// parts[3] = salt
	// parts[4] = hash

	var memory uint32
	var time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrInvalidHashForm
	}
	// argon2.IDKey паникует на нулевых параметрах
	if memory == 0 || time == 0 || threads == 0 {
		return false, ErrInvalidHashForm
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(salt) == 0 {
		return false, ErrInvalidHashForm
	}

	wantHash, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(wantHash) == 0 {
		return false, ErrInvalidHashForm
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(wantHash)))
	return subtle.ConstantTimeCompare(got, wantHash) == 1, nil
}
