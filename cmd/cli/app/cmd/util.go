package cmd

import (
	"kjob/cmd/cli/app"
	"kjob/internal/core/handler"

	"github.com/spf13/cobra"
)

// jobFlags are the flags shared by every command that resolves a job.
type jobFlags struct {
	template           string
	jobPath            string
	customizations     string
	customizationsPath string
	name               string
	namespace          string
	image              string
	labels             map[string]string
	env                map[string]string
	imagePullPolicy    string
	serviceAccountName string
	finishedJobTTL     int
}

func (f *jobFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.template, "template", "t", "", "Job template to use (default \"default\")")
	flags.StringVarP(&f.jobPath, "file", "f", "", "Job manifest to check against the template and use instead of it")
	flags.StringVarP(&f.customizations, "customizations", "c", "", "JSON patch operations applied to the job")
	flags.StringVar(&f.customizationsPath, "customizations-file", "", "File with JSON patch operations, applied before --customizations")
	flags.StringVar(&f.name, "name", "", "Prefix for the generated job name")
	flags.StringVarP(&f.namespace, "namespace", "n", "", "Namespace of the job")
	flags.StringVar(&f.image, "image", "", "Image of the job's first container")
	flags.StringToStringVarP(&f.labels, "label", "l", nil, "Labels to add to the job, as key=value")
	flags.StringToStringVarP(&f.env, "env", "e", nil, "Environment variables for the job's first container, as NAME=value")
	flags.StringVar(&f.imagePullPolicy, "image-pull-policy", "", "Image pull policy: Always, IfNotPresent or Never")
	flags.StringVar(&f.serviceAccountName, "service-account", "", "Service account the job runs as")
	flags.IntVar(&f.finishedJobTTL, "ttl", 0, "Seconds to keep the job after it finished")

	_ = cmd.RegisterFlagCompletionFunc("template", TemplateNameCompletion)
}

// options converts the parsed flags into JobOptions. Namespace, image and
// ttl are only set when their flag was given, so an explicit empty value
// still counts.
func (f *jobFlags) options(cmd *cobra.Command, command []string) handler.JobOptions {
	opts := handler.JobOptions{
		TemplateName:       f.template,
		JobPath:            f.jobPath,
		Customizations:     f.customizations,
		CustomizationsPath: f.customizationsPath,
	}
	opts.Overrides.Name = f.name
	opts.Overrides.Labels = f.labels
	opts.Overrides.Env = f.env
	opts.Overrides.Command = command
	opts.Overrides.ImagePullPolicy = f.imagePullPolicy
	opts.Overrides.ServiceAccountName = f.serviceAccountName

	flags := cmd.Flags()
	if flags.Changed("namespace") {
		namespace := f.namespace
		opts.Overrides.Namespace = &namespace
	}
	if flags.Changed("image") {
		image := f.image
		opts.Overrides.Image = &image
	}
	if flags.Changed("ttl") {
		ttl := f.finishedJobTTL
		opts.Overrides.FinishedJobTTL = &ttl
	}
	return opts
}

// commandArgs returns the arguments given after "--".
func commandArgs(cmd *cobra.Command, args []string) []string {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return nil
	}
	return args[dash:]
}

func TemplateNameCompletion(
	cmd *cobra.Command,
	args []string,
	toComplete string,
) ([]cobra.Completion, cobra.ShellCompDirective) {
	configRepo, err := app.InjectConfigRepo()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	config, err := configRepo.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var templateNames []string
	for _, template := range config.Templates {
		templateNames = append(templateNames, template.Name)
	}

	return templateNames, cobra.ShellCompDirectiveNoFileComp
}
