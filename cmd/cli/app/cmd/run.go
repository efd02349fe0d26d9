package cmd

import (
	"fmt"

	"kjob/cmd/cli/app"

	"github.com/spf13/cobra"
)

var runFlags jobFlags

func init() {
	runFlags.register(runCmd)
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [flags] [-- command...]",
	Short: "Submits a job to the cluster",
	Long: `Resolves a job exactly like 'kjob render' and submits it to the cluster of the
current kubeconfig context. Every submission is labelled with a unique
submission id.`,
	SilenceUsage: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.ArgsLenAtDash() < 0 && len(args) > 0 {
			return fmt.Errorf("unexpected arguments %v, pass the job command after --", args)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectRunCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(cmd.Context(), runFlags.options(cmd, commandArgs(cmd, args)), cmd.OutOrStdout())
	},
}
