package cmd

import (
	"kjob/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initializeCmd)
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Generates a new configuration file and default job template",
	Long:  `A new configuration file is written to ~/.kjob-config.yaml and the base job manifest to ~/.kjob/templates/job.yaml. Nothing is written if the configuration already exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectInitializeCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle()
	},
}
