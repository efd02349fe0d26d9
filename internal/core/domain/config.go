package domain

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

// Config holds the application configuration: job templates and the
// fallbacks used when a job names no namespace or image.
type Config struct {
	Defaults  DefaultsConfig `yaml:"defaults"`
	Templates []JobTemplate  `yaml:"templates"`
}

type DefaultsConfig struct {
	Namespace string      `yaml:"namespace"`
	Image     ImageConfig `yaml:"image"`
}

// ImageConfig describes the canonical worker image. An empty Tag falls back
// to the running CLI version.
type ImageConfig struct {
	Registry   string `yaml:"registry,omitempty"`
	Repository string `yaml:"repository"`
	Tag        string `yaml:"tag,omitempty"`
}

// JobTemplate points at the base job manifest and, optionally, at separate
// templates for the required shape and for fixed values. Customizations is
// either a list of patch operations or a JSON encoded string.
type JobTemplate struct {
	Name            string `yaml:"name"`
	ManifestPath    string `yaml:"manifestPath"`
	RequiredPath    string `yaml:"requiredPath,omitempty"`
	FixedValuesPath string `yaml:"fixedValuesPath,omitempty"`
	Customizations  any    `yaml:"customizations,omitempty"`
}

const DefaultTemplateName = "default"

func CreateDefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Namespace: "default",
			Image: ImageConfig{
				Registry:   "docker.io",
				Repository: "kjob/worker",
			},
		},
		Templates: []JobTemplate{
			{
				Name:         DefaultTemplateName,
				ManifestPath: "~/.kjob/templates/job.yaml",
			},
		},
	}
}

// ImageReference renders registry/repository:tag, using version when no tag
// is configured.
func (c ImageConfig) ImageReference(version string) string {
	tag := c.Tag
	if tag == "" {
		tag = version
	}
	ref := c.Repository
	if c.Registry != "" {
		ref = strings.TrimSuffix(c.Registry, "/") + "/" + ref
	}
	if tag == "" {
		return ref
	}
	return fmt.Sprintf("%s:%s", ref, tag)
}

func (c *Config) TemplateExists(name string) bool {
	for _, template := range c.Templates {
		if template.Name == name {
			return true
		}
	}
	return false
}

func (c *Config) GetTemplate(name string) (*JobTemplate, error) {
	for _, template := range c.Templates {
		if template.Name == name {
			return &template, nil
		}
	}
	return nil, fmt.Errorf("job template '%s' not found", name)
}

func (c *Config) Validate() error {
	if len(c.Templates) == 0 {
		return fmt.Errorf("no job templates defined in configuration")
	}

	seen := make(map[string]bool)
	for i, template := range c.Templates {
		if template.Name == "" {
			return fmt.Errorf("job template at index %d has empty name", i)
		}
		if strings.Contains(template.Name, "..") ||
			strings.ContainsAny(template.Name, "/\\\x00") {
			return fmt.Errorf("job template name '%s' contains invalid characters", template.Name)
		}
		if seen[template.Name] {
			return fmt.Errorf("job template '%s' is defined more than once", template.Name)
		}
		seen[template.Name] = true
		if template.ManifestPath == "" {
			return fmt.Errorf("job template '%s' has empty manifestPath", template.Name)
		}
	}

	if c.Defaults.Namespace == "" {
		return fmt.Errorf("defaults.namespace must not be empty")
	}
	if errs := validation.IsDNS1123Label(c.Defaults.Namespace); len(errs) > 0 {
		return fmt.Errorf("defaults.namespace '%s' is invalid: %s", c.Defaults.Namespace, strings.Join(errs, "; "))
	}
	if c.Defaults.Image.Repository == "" {
		return fmt.Errorf("defaults.image.repository must not be empty")
	}

	return nil
}

// LoadedTemplate is a job template with its manifests parsed. Required and
// FixedValues are the same document as Manifest unless the template points
// at separate files.
type LoadedTemplate struct {
	Name           string
	Manifest       Document
	Required       Document
	FixedValues    Document
	Customizations any
}
