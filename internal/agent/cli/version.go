package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// значение для полей, не заданных через -ldflags
const unknownBuildValue = "N/A"

// NewVersionCmd — `credctl version`: версия клиента и дата сборки из -ldflags.
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	if buildVersion == "" {
		buildVersion = unknownBuildValue
	}
	if buildDate == "" {
		buildDate = unknownBuildValue
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Версия credctl",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "credctl version=%s\nbuild_date=%s\n", buildVersion, buildDate)
			return err
		},
	}
}
