package cmd

import (
	"kjob/cmd/cli/app"

	"github.com/spf13/cobra"
)

var checkTemplate string

func init() {
	checkCmd.Flags().StringVarP(&checkTemplate, "template", "t", "", "Job template to check against (default \"default\")")
	_ = checkCmd.RegisterFlagCompletionFunc("template", TemplateNameCompletion)
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [job-file...]",
	Short: "Checks jobs against a job template",
	Long: `Reports, for every given job manifest, the attributes the template requires
that the job is missing and the values the job changes although the template
fixes them. Files are checked concurrently and every violation is listed.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectCheckCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(cmd.Context(), checkTemplate, args, cmd.OutOrStdout())
	},
}
