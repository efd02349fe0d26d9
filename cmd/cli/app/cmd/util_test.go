package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseJobFlags(t *testing.T, args ...string) (*jobFlags, *cobra.Command) {
	t.Helper()
	flags := &jobFlags{}
	command := &cobra.Command{Use: "test"}
	flags.register(command)
	require.NoError(t, command.ParseFlags(args))
	return flags, command
}

func TestJobFlags_Options(t *testing.T) {
	flags, command := parseJobFlags(t,
		"-t", "gpu",
		"-f", "job.yaml",
		"-c", `[{"op":"remove","path":"/spec/backoffLimit"}]`,
		"--customizations-file", "patch.json",
		"--name", "nightly",
		"-l", "team=data,tier=batch",
		"-e", "MODE=fast",
		"--image-pull-policy", "Always",
		"--service-account", "runner",
	)

	opts := flags.options(command, []string{"echo", "hi"})

	assert.Equal(t, "gpu", opts.TemplateName)
	assert.Equal(t, "job.yaml", opts.JobPath)
	assert.Equal(t, `[{"op":"remove","path":"/spec/backoffLimit"}]`, opts.Customizations)
	assert.Equal(t, "patch.json", opts.CustomizationsPath)
	assert.Equal(t, "nightly", opts.Overrides.Name)
	assert.Equal(t, map[string]string{"team": "data", "tier": "batch"}, opts.Overrides.Labels)
	assert.Equal(t, map[string]string{"MODE": "fast"}, opts.Overrides.Env)
	assert.Equal(t, []string{"echo", "hi"}, opts.Overrides.Command)
	assert.Equal(t, "Always", opts.Overrides.ImagePullPolicy)
	assert.Equal(t, "runner", opts.Overrides.ServiceAccountName)
	assert.Nil(t, opts.Overrides.Namespace)
	assert.Nil(t, opts.Overrides.Image)
	assert.Nil(t, opts.Overrides.FinishedJobTTL)
}

func TestJobFlags_ExplicitEmptyValuesAreGiven(t *testing.T) {
	flags, command := parseJobFlags(t, "--namespace", "", "--image=", "--ttl", "0")

	opts := flags.options(command, nil)

	require.NotNil(t, opts.Overrides.Namespace)
	assert.Equal(t, "", *opts.Overrides.Namespace)
	require.NotNil(t, opts.Overrides.Image)
	assert.Equal(t, "", *opts.Overrides.Image)
	require.NotNil(t, opts.Overrides.FinishedJobTTL)
	assert.Equal(t, 0, *opts.Overrides.FinishedJobTTL)
	assert.Equal(t, "", opts.TemplateName)
}
