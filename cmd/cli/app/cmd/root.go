package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kjob",
	Short: "Renders and submits Kubernetes jobs from governed templates",
	Long: `kjob builds Kubernetes Job manifests from job templates, checks user supplied
jobs against the shape and fixed values a template enforces, applies JSON patch
customizations and submits the result to the cluster.

Configuration is stored in ~/.kjob-config.yaml. Run 'kjob initialize' to create
a default configuration and job template.

Common workflows:
  kjob render                         Print the default job manifest
  kjob render -f job.yaml -o json     Check and render your own job
  kjob check jobs/*.yaml              Report template violations for many jobs
  kjob run --image busybox -- echo hi Submit a job running a command`,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
