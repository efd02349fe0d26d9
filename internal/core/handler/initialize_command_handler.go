package handler

import (
	"fmt"

	"kjob/internal/cli/output"
	"kjob/internal/core"
	"kjob/internal/core/domain"
)

type InitializeCommandHandler struct {
	configRepository   core.ConfigRepository
	templateRepository core.JobTemplateRepository
}

func ProvideInitializeCommandHandler(
	configRepository core.ConfigRepository,
	templateRepository core.JobTemplateRepository,
) InitializeCommandHandler {
	return InitializeCommandHandler{
		configRepository:   configRepository,
		templateRepository: templateRepository,
	}
}

// Handle writes the default configuration and the base job manifest of the
// default template.
func (h *InitializeCommandHandler) Handle() error {
	configExists, err := h.configRepository.ConfigExists()
	if err != nil {
		return err
	}
	if configExists {
		return fmt.Errorf("configuration already exists")
	}

	config := domain.CreateDefaultConfig()
	template, err := config.GetTemplate(domain.DefaultTemplateName)
	if err != nil {
		return err
	}
	if err := h.templateRepository.SaveDocument(template.ManifestPath, core.BaseJobManifest()); err != nil {
		return fmt.Errorf("failed to write base job manifest: %w", err)
	}
	if err := h.configRepository.SaveConfig(&config); err != nil {
		return err
	}

	output.PrintSuccess("Configuration written")
	output.PrintSecondary(fmt.Sprintf("job template '%s' at %s", template.Name, template.ManifestPath))
	return nil
}
