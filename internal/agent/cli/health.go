package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCmd проверяет, что сервер отвечает и его хранилище доступно.
func NewHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Проверить доступность сервера",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client().Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
