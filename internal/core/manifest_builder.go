package core

import (
	"fmt"

	"kjob/internal/core/domain"

	"go.uber.org/zap"
)

// BuildRequest describes one job to resolve. Job is the user's full job
// manifest, nil when the template manifest should be used as is.
type BuildRequest struct {
	TemplateName   string
	Job            *domain.Document
	Customizations any
	Overrides      JobOverrides
}

// ManifestBuilder runs the whole pipeline: compliance of the job against its
// template, customization and defaulting.
type ManifestBuilder struct {
	configRepository   ConfigRepository
	templateRepository JobTemplateRepository
	checker            *ComplianceChecker
	engine             *CustomizationEngine
	defaultsResolver   *DefaultsResolver
	logger             *zap.Logger
}

func ProvideManifestBuilder(
	configRepository ConfigRepository,
	templateRepository JobTemplateRepository,
	checker *ComplianceChecker,
	engine *CustomizationEngine,
	defaultsResolver *DefaultsResolver,
	logger *zap.Logger,
) *ManifestBuilder {
	return &ManifestBuilder{
		configRepository:   configRepository,
		templateRepository: templateRepository,
		checker:            checker,
		engine:             engine,
		defaultsResolver:   defaultsResolver,
		logger:             logger,
	}
}

// LoadTemplate resolves a template by name. An empty name selects the
// default template.
func (b *ManifestBuilder) LoadTemplate(name string) (*domain.LoadedTemplate, error) {
	config, err := b.configRepository.LoadConfig()
	if err != nil {
		return nil, err
	}
	return b.loadTemplate(config, name)
}

func (b *ManifestBuilder) loadTemplate(config *domain.Config, name string) (*domain.LoadedTemplate, error) {
	if name == "" {
		name = domain.DefaultTemplateName
	}
	template, err := config.GetTemplate(name)
	if err != nil {
		return nil, err
	}
	return b.templateRepository.LoadTemplate(*template)
}

// Check reports the paths the job lacks from the required template and the
// values that disagree with the fixed values template.
func (b *ManifestBuilder) Check(job domain.Document, template *domain.LoadedTemplate) (domain.ComplianceReport, error) {
	required, err := b.checker.Check(job, template.Required)
	if err != nil {
		return domain.ComplianceReport{}, err
	}
	fixed, err := b.checker.Check(job, template.FixedValues)
	if err != nil {
		return domain.ComplianceReport{}, err
	}
	return domain.ComplianceReport{
		MissingRequired: required.MissingRequired,
		Incompatible:    fixed.Incompatible,
	}, nil
}

// Build produces the final manifest for request. Missing components are
// reported before incompatible values.
func (b *ManifestBuilder) Build(request BuildRequest) (domain.Document, error) {
	config, err := b.configRepository.LoadConfig()
	if err != nil {
		return domain.Document{}, err
	}
	template, err := b.loadTemplate(config, request.TemplateName)
	if err != nil {
		return domain.Document{}, err
	}

	job := template.Manifest
	if request.Job != nil {
		if err := b.checker.RequireComponents(*request.Job, template.Required); err != nil {
			return domain.Document{}, err
		}
		if err := b.checker.RequireCompatibleValues(*request.Job, template.FixedValues); err != nil {
			return domain.Document{}, err
		}
		job = *request.Job
	}

	patch, err := b.collectPatch(template, request)
	if err != nil {
		return domain.Document{}, err
	}
	b.logger.Debug("applying customizations",
		zap.String("template", template.Name),
		zap.Int("operations", len(patch)),
	)

	resolved, err := b.engine.Apply(job, patch)
	if err != nil {
		return domain.Document{}, err
	}

	imageConfig := config.Defaults.Image
	given := request.Overrides.Given()
	resolved = b.defaultsResolver.ResolveDefaults(resolved, given, Defaults{
		Namespace: config.Defaults.Namespace,
		Image: func() string {
			return imageConfig.ImageReference(Version)
		},
	})
	if !given.ImageGiven && !hasValue(resolved, ImagePath) {
		b.logger.Debug("default image not applied, manifest has no first container",
			zap.String("template", template.Name),
			zap.String("path", FirstContainer.String()),
		)
	}
	return resolved, nil
}

// collectPatch orders the shortcut overrides first, then the template's
// stored customizations, then the request's own.
func (b *ManifestBuilder) collectPatch(template *domain.LoadedTemplate, request BuildRequest) (domain.Patch, error) {
	patch, err := request.Overrides.Patch()
	if err != nil {
		return nil, fmt.Errorf("invalid job overrides: %w", err)
	}
	stored, err := b.engine.Normalize(template.Customizations)
	if err != nil {
		return nil, fmt.Errorf("invalid customizations in job template '%s': %w", template.Name, err)
	}
	requested, err := b.engine.Normalize(request.Customizations)
	if err != nil {
		return nil, err
	}
	patch = append(patch, stored...)
	return append(patch, requested...), nil
}
