package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Пароль берётся из --password, из stdin (--password-stdin)
// или спрашивается в терминале.
//
// Пример использования:
//
//	credctl register --username alice --email a@x.com --first-name A --last-name L --phone 555-0100
func NewRegisterCmd(app *App) *cobra.Command {
	var (
		req           smodels.RegisterRequest
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  credctl register --username alice --email a@x.com --first-name A --last-name L --phone 555-0100
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := resolvePassword(cmd, req.Password, passwordStdin)
			if err != nil {
				return err
			}
			req.Password = pw

			resp, err := app.Client().Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", resp.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "username")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted if empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	for _, f := range []string{"username", "email", "first-name", "last-name", "phone"} {
		cmd.MarkFlagRequired(f)
	}

	return cmd
}
