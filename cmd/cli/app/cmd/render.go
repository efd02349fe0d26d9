package cmd

import (
	"fmt"

	"kjob/cmd/cli/app"
	"kjob/internal/core/handler"

	"github.com/spf13/cobra"
)

var (
	renderFlags  jobFlags
	renderFormat string
)

func init() {
	renderFlags.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "output", "o", handler.FormatYAML, "Output format: yaml or json")
	_ = renderCmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]cobra.Completion{handler.FormatYAML, handler.FormatJSON},
		cobra.ShellCompDirectiveNoFileComp,
	))
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [flags] [-- command...]",
	Short: "Prints the resolved job manifest",
	Long: `Resolves a job from its template and prints the manifest without submitting it.

When --file is given the job is first checked against the template: it must
contain every attribute the template requires and keep every value the template
fixes. Customizations are then applied in order: flag shortcuts, the template's
own customizations, --customizations-file and --customizations. Finally the
namespace and image fall back to the configured defaults.`,
	SilenceUsage: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.ArgsLenAtDash() < 0 && len(args) > 0 {
			return fmt.Errorf("unexpected arguments %v, pass the job command after --", args)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectRenderCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(renderFlags.options(cmd, commandArgs(cmd, args)), renderFormat, cmd.OutOrStdout())
	},
}
