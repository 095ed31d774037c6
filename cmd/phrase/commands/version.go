package commands

import (
	"fmt"

	"phraseapp/internal/version"

	"github.com/spf13/cobra"
)

// VersionCommand prints build information
func VersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			"services": "none",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get("phrase")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}
