package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/credkeeper/internal/agent/config"
	"github.com/IvanChernomyrdin/credkeeper/internal/shared/utils"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя.
//
// Команда проверяет учётные данные на сервере и сохраняет полученный
// профиль в локальный файл. Пароль никуда не сохраняется.
//
// Пример использования:
//
//	credctl login --username alice
func NewLoginCmd(app *App) *cobra.Command {
	var (
		username, password string
		passwordStdin      bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход пользователя (сохраняет профиль)",
		Long: `Вход пользователя.

Пример:
  credctl login --username alice
  echo hunter2 | credctl login --username alice --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := resolvePassword(cmd, password, passwordStdin)
			if err != nil {
				return err
			}

			user, err := app.Client().Login(cmd.Context(), username, pw)
			if err != nil {
				return err
			}

			app.Profile = &config.Profile{Server: app.ServerURL, User: utils.Ptr(user)}
			if err := config.Save(app.ProfilePath, app.Profile); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "login ok (%s)\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for login")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("username")

	return cmd
}
