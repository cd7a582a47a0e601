// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// После успешного логина профиль пользователя сохраняется в домашней
// директории пользователя в файле:
//
//	~/.credkeeper/profile.json
//
// Пароли и хэши в файл не пишутся.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

// Profile — то, что CLI помнит между запусками.
type Profile struct {
	// Server — адрес сервера, на котором выполнен вход.
	Server string              `json:"server"`
	User   *smodels.UserProfile `json:"user,omitempty"`
}

// LoggedIn сообщает, есть ли сохранённый пользователь.
func (p *Profile) LoggedIn() bool {
	return p != nil && p.User != nil
}

// DefaultPath возвращает путь к файлу профиля в домашней директории пользователя.
//
//	<home>/.credkeeper/profile.json
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".credkeeper", "profile.json"), nil
}

// Load загружает профиль из указанного файла.
//
// Если файл не существует, возвращает пустой профиль без ошибки.
// Если файл существует, но содержит некорректный JSON, возвращает ошибку.
func Load(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Profile{}, nil
		}
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save сохраняет профиль в указанный файл в JSON формате.
//
// При необходимости создаёт директорию назначения с правами 0700.
// Файл записывается с правами 0600.
func Save(path string, p *Profile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
