// Package cli реализует командный интерфейс (CLI) клиента credctl.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку сохранённого профиля из локального файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/credkeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/credkeeper/internal/agent/config"
)

// DefaultServerURL — адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:8000"

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера credkeeper.
	ServerURL string
	// Insecure отключает проверку TLS-сертификата сервера.
	Insecure bool

	// ProfilePath — путь к файлу с сохранённым профилем.
	ProfilePath string
	// Profile — загруженный профиль. Может быть nil, если загрузка не выполнялась.
	Profile *config.Profile
}

// Client создаёт API-клиент по настройкам приложения.
func (a *App) Client() *api.Client {
	var opts []api.Option
	if a.Insecure {
		opts = append(opts, api.WithInsecureSkipVerify())
	}
	return NewAPIClient(a.ServerURL, opts...)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE определяется путь к файлу профиля и загружается профиль.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "credctl",
		Short: "credctl — клиент сервиса учётных записей credkeeper",
		Long: `credctl.

Команды:
  register  Регистрация нового пользователя
  login     Вход (сохраняет профиль локально)
  whoami    Показать сохранённый профиль
  health    Проверить доступность сервера
  version   Версия и дата сборки

Примеры:

Регистрация:
  credctl register --username alice --email a@x.com --first-name A --last-name L --phone 555-0100

Логин:
  credctl login --username alice
  (пароль спрашивается без эха; или --password-stdin)
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.ProfilePath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.ProfilePath = p
			}

			profile, err := config.Load(app.ProfilePath)
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}
			app.Profile = profile
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")
	cmd.PersistentFlags().StringVar(&app.ProfilePath, "profile", "", "profile file (default ~/.credkeeper/profile.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewWhoamiCmd(app))
	cmd.AddCommand(NewHealthCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	cmd := NewRootCmd(buildVersion, buildDate)
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
