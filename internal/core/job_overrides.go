package core

import (
	"fmt"
	"slices"
	"strings"

	"kjob/internal/core/domain"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/validation"
)

var imagePullPolicies = []string{"Always", "IfNotPresent", "Never"}

// JobOverrides are the shortcut customizations a user can pass on the
// command line instead of writing patch operations. Namespace and Image are
// pointers so that an explicit empty value can be told apart from none.
type JobOverrides struct {
	Name               string
	Namespace          *string
	Image              *string
	Labels             map[string]string
	Env                map[string]string
	Command            []string
	ImagePullPolicy    string
	ServiceAccountName string
	FinishedJobTTL     *int
}

func (o JobOverrides) Given() Overrides {
	return Overrides{
		NamespaceGiven: o.Namespace != nil,
		ImageGiven:     o.Image != nil,
	}
}

// Validate reports every invalid override at once.
func (o JobOverrides) Validate() error {
	var errs []error
	if o.Namespace != nil && *o.Namespace != "" {
		for _, msg := range validation.IsDNS1123Label(*o.Namespace) {
			errs = append(errs, fmt.Errorf("invalid namespace '%s': %s", *o.Namespace, msg))
		}
	}
	for _, key := range sortedKeys(o.Labels) {
		for _, msg := range validation.IsQualifiedName(key) {
			errs = append(errs, fmt.Errorf("invalid label key '%s': %s", key, msg))
		}
		for _, msg := range validation.IsValidLabelValue(o.Labels[key]) {
			errs = append(errs, fmt.Errorf("invalid value for label '%s': %s", key, msg))
		}
	}
	for _, name := range sortedKeys(o.Env) {
		for _, msg := range validation.IsEnvVarName(name) {
			errs = append(errs, fmt.Errorf("invalid environment variable name '%s': %s", name, msg))
		}
	}
	if o.ImagePullPolicy != "" && !slices.Contains(imagePullPolicies, o.ImagePullPolicy) {
		errs = append(errs, fmt.Errorf(
			"invalid image pull policy '%s', must be one of %s",
			o.ImagePullPolicy, strings.Join(imagePullPolicies, ", "),
		))
	}
	if o.ServiceAccountName != "" {
		for _, msg := range validation.IsDNS1123Subdomain(o.ServiceAccountName) {
			errs = append(errs, fmt.Errorf("invalid service account name '%s': %s", o.ServiceAccountName, msg))
		}
	}
	if o.FinishedJobTTL != nil && *o.FinishedJobTTL < 0 {
		errs = append(errs, fmt.Errorf("finished job TTL must not be negative, got %d", *o.FinishedJobTTL))
	}
	return utilerrors.NewAggregate(errs)
}

// Patch converts the overrides into patch operations. Only fields that were
// given produce operations.
func (o JobOverrides) Patch() (domain.Patch, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	container := FirstContainer
	var patch domain.Patch
	if o.Namespace != nil {
		patch = append(patch, domain.AddOp(NamespacePath, domain.String(*o.Namespace)))
	}
	if o.Image != nil {
		patch = append(patch, domain.AddOp(ImagePath, domain.String(*o.Image)))
	}
	for _, key := range sortedKeys(o.Labels) {
		patch = append(patch, domain.AddOp(
			domain.NewPath("metadata", "labels", key),
			domain.String(o.Labels[key]),
		))
	}
	for _, name := range sortedKeys(o.Env) {
		patch = append(patch, domain.AddOp(
			container.Child("env").Child("-"),
			domain.Map(
				domain.Field{Key: "name", Value: domain.String(name)},
				domain.Field{Key: "value", Value: domain.String(o.Env[name])},
			),
		))
	}
	if o.ImagePullPolicy != "" {
		patch = append(patch, domain.AddOp(container.Child("imagePullPolicy"), domain.String(o.ImagePullPolicy)))
	}
	if o.ServiceAccountName != "" {
		patch = append(patch, domain.AddOp(
			domain.NewPath("spec", "template", "spec", "serviceAccountName"),
			domain.String(o.ServiceAccountName),
		))
	}
	if o.FinishedJobTTL != nil {
		patch = append(patch, domain.AddOp(
			domain.NewPath("spec", "ttlSecondsAfterFinished"),
			domain.Number(float64(*o.FinishedJobTTL)),
		))
	}
	if len(o.Command) > 0 {
		args := make([]domain.Document, len(o.Command))
		for i, arg := range o.Command {
			args[i] = domain.String(arg)
		}
		patch = append(patch, domain.AddOp(container.Child("args"), domain.List(args...)))
	}
	if o.Name != "" {
		patch = append(patch, domain.AddOp(
			domain.NewPath("metadata", "generateName"),
			domain.String(o.Name+"-"),
		))
	}
	return patch, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
