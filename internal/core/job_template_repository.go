package core

import (
	"fmt"

	"kjob/internal/core/domain"
	"kjob/internal/ports"
)

type JobTemplateRepository interface {
	LoadTemplate(template domain.JobTemplate) (*domain.LoadedTemplate, error)
	LoadDocument(path string) (domain.Document, error)
	SaveDocument(path string, doc domain.Document) error
}

type FileSystemJobTemplateRepository struct {
	fileService ports.FileSystem
}

func ProvideFileSystemJobTemplateRepository(fileService ports.FileSystem) *FileSystemJobTemplateRepository {
	return &FileSystemJobTemplateRepository{
		fileService: fileService,
	}
}

func (r *FileSystemJobTemplateRepository) LoadTemplate(template domain.JobTemplate) (*domain.LoadedTemplate, error) {
	manifest, err := r.loadManifest(template)
	if err != nil {
		return nil, err
	}

	loaded := &domain.LoadedTemplate{
		Name:           template.Name,
		Manifest:       manifest,
		Required:       manifest,
		FixedValues:    manifest,
		Customizations: template.Customizations,
	}
	if template.RequiredPath != "" && template.RequiredPath != template.ManifestPath {
		if loaded.Required, err = r.LoadDocument(template.RequiredPath); err != nil {
			return nil, fmt.Errorf("failed to load required template for '%s': %w", template.Name, err)
		}
	}
	if template.FixedValuesPath != "" && template.FixedValuesPath != template.ManifestPath {
		if loaded.FixedValues, err = r.LoadDocument(template.FixedValuesPath); err != nil {
			return nil, fmt.Errorf("failed to load fixed values template for '%s': %w", template.Name, err)
		}
	}
	return loaded, nil
}

// loadManifest falls back to the built-in manifest for the default template
// when its file has not been written yet.
func (r *FileSystemJobTemplateRepository) loadManifest(template domain.JobTemplate) (domain.Document, error) {
	exists, err := r.fileService.FileExists(template.ManifestPath)
	if err != nil {
		return domain.Document{}, err
	}
	if !exists {
		if template.Name == domain.DefaultTemplateName {
			return BaseJobManifest(), nil
		}
		return domain.Document{}, fmt.Errorf("manifest for job template '%s' not found at %s", template.Name, template.ManifestPath)
	}
	manifest, err := r.LoadDocument(template.ManifestPath)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to load manifest for job template '%s': %w", template.Name, err)
	}
	return manifest, nil
}

// LoadDocument reads a YAML or JSON file into a Document.
func (r *FileSystemJobTemplateRepository) LoadDocument(path string) (domain.Document, error) {
	data, err := r.fileService.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := domain.Parse(data)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

func (r *FileSystemJobTemplateRepository) SaveDocument(path string, doc domain.Document) error {
	data, err := domain.EncodeYAML(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return r.fileService.WriteFile(path, data, ports.ReadAllWriteOwner)
}
