package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrNotLoggedIn — профиль ещё не сохранён.
var ErrNotLoggedIn = errors.New("not logged in; run credctl login")

// NewWhoamiCmd выводит профиль из последнего успешного login.
func NewWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Показать сохранённый профиль",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Profile.LoggedIn() {
				return ErrNotLoggedIn
			}
			u := app.Profile.User
			fmt.Fprintf(cmd.OutOrStdout(),
				"user_id=%d\nusername=%s\nemail=%s\nname=%s %s\nphone=%s\nserver=%s\n",
				u.UserID, u.Username, u.Email, u.FirstName, u.LastName, u.Phone, app.Profile.Server,
			)
			return nil
		},
	}
}
