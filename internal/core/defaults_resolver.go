package core

import (
	"kjob/internal/core/domain"
)

var (
	NamespacePath  = domain.MustParsePointer("/metadata/namespace")
	ImagePath      = domain.MustParsePointer("/spec/template/spec/containers/0/image")
	FirstContainer = domain.MustParsePointer("/spec/template/spec/containers/0")
)

// Overrides records which defaultable fields the caller supplied explicitly.
// An explicit empty value still counts as given.
type Overrides struct {
	NamespaceGiven bool
	ImageGiven     bool
}

// Defaults carries the fallback values of the surrounding system.
type Defaults struct {
	Namespace string
	Image     func() string
}

type DefaultsResolver struct{}

func ProvideDefaultsResolver() *DefaultsResolver {
	return &DefaultsResolver{}
}

// ResolveDefaults fills the namespace and the first container's image when
// neither the overrides nor the manifest provide them. A null value counts
// as absent. The input manifest is never modified.
func (r *DefaultsResolver) ResolveDefaults(manifest domain.Document, overrides Overrides, defaults Defaults) domain.Document {
	resolved := manifest
	if !overrides.NamespaceGiven && defaults.Namespace != "" && !hasValue(resolved, NamespacePath) {
		resolved = setNamespace(resolved, defaults.Namespace)
	}
	if !overrides.ImageGiven && defaults.Image != nil && !hasValue(resolved, ImagePath) {
		resolved = setImage(resolved, defaults.Image)
	}
	return resolved
}

func hasValue(doc domain.Document, path domain.Path) bool {
	value, found := domain.Get(doc, path)
	return found && !value.IsNull()
}

func setNamespace(manifest domain.Document, namespace string) domain.Document {
	if !manifest.IsMap() {
		return manifest
	}
	metadata, found := manifest.Field("metadata")
	if !found || metadata.IsNull() {
		metadata = domain.Map()
	}
	if !metadata.IsMap() {
		return manifest
	}
	return manifest.With("metadata", metadata.With("namespace", domain.String(namespace)))
}

func setImage(manifest domain.Document, image func() string) domain.Document {
	container, found := domain.Get(manifest, FirstContainer)
	if !found || !container.IsMap() {
		return manifest
	}
	reference := image()
	if reference == "" {
		return manifest
	}
	resolved, err := addAt(manifest, ImagePath, domain.String(reference))
	if err != nil {
		return manifest
	}
	return resolved
}
