package handler

import (
	"fmt"

	"kjob/internal/core"
	"kjob/internal/core/domain"
)

// JobOptions are the inputs shared by render and run.
type JobOptions struct {
	TemplateName       string
	JobPath            string
	Customizations     string
	CustomizationsPath string
	Overrides          core.JobOverrides
}

// jobResolver turns JobOptions into a final manifest.
type jobResolver struct {
	builder            *core.ManifestBuilder
	templateRepository core.JobTemplateRepository
	engine             *core.CustomizationEngine
}

func (r jobResolver) resolve(opts JobOptions) (domain.Document, error) {
	request := core.BuildRequest{
		TemplateName: opts.TemplateName,
		Overrides:    opts.Overrides,
	}

	if opts.JobPath != "" {
		job, err := r.templateRepository.LoadDocument(opts.JobPath)
		if err != nil {
			return domain.Document{}, fmt.Errorf("failed to load job: %w", err)
		}
		request.Job = &job
	}

	customizations, err := r.customizations(opts)
	if err != nil {
		return domain.Document{}, err
	}
	request.Customizations = customizations

	return r.builder.Build(request)
}

// customizations combines the customizations file and the inline value, file
// first.
func (r jobResolver) customizations(opts JobOptions) (domain.Patch, error) {
	var patch domain.Patch
	if opts.CustomizationsPath != "" {
		records, err := r.templateRepository.LoadDocument(opts.CustomizationsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load customizations: %w", err)
		}
		fromFile, err := r.engine.Normalize(records)
		if err != nil {
			return nil, fmt.Errorf("invalid customizations in %s: %w", opts.CustomizationsPath, err)
		}
		patch = append(patch, fromFile...)
	}
	if opts.Customizations != "" {
		inline, err := r.engine.Normalize(opts.Customizations)
		if err != nil {
			return nil, err
		}
		patch = append(patch, inline...)
	}
	return patch, nil
}
