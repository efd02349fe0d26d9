package core

import (
	"errors"
	"testing"

	"kjob/internal/core/domain"
	"kjob/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const templateJob = `{
  "apiVersion": "batch/v1",
  "kind": "Job",
  "metadata": {"labels": {"team": "platform"}},
  "spec": {
    "backoffLimit": 0,
    "template": {
      "spec": {
        "restartPolicy": "Never",
        "containers": [{"name": "worker", "env": []}]
      }
    }
  }
}`

const requiredJob = `{"kind":"Job","metadata":{},"spec":{"template":{"spec":{"containers":[]}}}}`

const fixedValuesJob = `{"kind":"Job","spec":{"template":{"spec":{"restartPolicy":"Never"}}}}`

func builderConfig() *domain.Config {
	return &domain.Config{
		Defaults: domain.DefaultsConfig{
			Namespace: "jobs",
			Image:     domain.ImageConfig{Registry: "docker.io", Repository: "kjob/worker"},
		},
		Templates: []domain.JobTemplate{
			{Name: domain.DefaultTemplateName, ManifestPath: "/templates/job.yaml"},
			{Name: "gpu", ManifestPath: "/templates/gpu.yaml"},
		},
	}
}

func loadedTemplate(t *testing.T, customizations any) *domain.LoadedTemplate {
	t.Helper()
	return &domain.LoadedTemplate{
		Name:           domain.DefaultTemplateName,
		Manifest:       parseDoc(t, templateJob),
		Required:       parseDoc(t, requiredJob),
		FixedValues:    parseDoc(t, fixedValuesJob),
		Customizations: customizations,
	}
}

func newTestBuilder(t *testing.T, template *domain.LoadedTemplate) (*ManifestBuilder, *testutil.MockJobTemplateRepository) {
	t.Helper()
	configRepo := &testutil.MockConfigRepository{}
	configRepo.On("LoadConfig").Return(builderConfig(), nil)
	templateRepo := &testutil.MockJobTemplateRepository{}
	if template != nil {
		templateRepo.On("LoadTemplate", mock.Anything).Return(template, nil)
	}
	builder := ProvideManifestBuilder(
		configRepo,
		templateRepo,
		newChecker(),
		ProvideCustomizationEngine(),
		ProvideDefaultsResolver(),
		zap.NewNop(),
	)
	return builder, templateRepo
}

func field(t *testing.T, doc domain.Document, pointer string) domain.Document {
	t.Helper()
	value, found := domain.Get(doc, domain.MustParsePointer(pointer))
	require.True(t, found, "expected a value at %s", pointer)
	return value
}

func TestManifestBuilder_BuildFromTemplateAppliesDefaults(t *testing.T) {
	builder, templateRepo := newTestBuilder(t, loadedTemplate(t, nil))

	result, err := builder.Build(BuildRequest{})

	require.NoError(t, err)
	assert.Equal(t, "jobs", mustString(t, field(t, result, "/metadata/namespace")))
	assert.Equal(t, "docker.io/kjob/worker:"+Version, mustString(t, field(t, result, "/spec/template/spec/containers/0/image")))
	templateRepo.AssertCalled(t, "LoadTemplate", mock.MatchedBy(func(template domain.JobTemplate) bool {
		return template.Name == domain.DefaultTemplateName
	}))
}

func TestManifestBuilder_BuildSelectsNamedTemplate(t *testing.T) {
	builder, templateRepo := newTestBuilder(t, loadedTemplate(t, nil))

	_, err := builder.Build(BuildRequest{TemplateName: "gpu"})

	require.NoError(t, err)
	templateRepo.AssertCalled(t, "LoadTemplate", mock.MatchedBy(func(template domain.JobTemplate) bool {
		return template.Name == "gpu" && template.ManifestPath == "/templates/gpu.yaml"
	}))
}

func TestManifestBuilder_BuildUnknownTemplate(t *testing.T) {
	builder, _ := newTestBuilder(t, nil)

	_, err := builder.Build(BuildRequest{TemplateName: "missing"})

	assert.EqualError(t, err, "job template 'missing' not found")
}

func TestManifestBuilder_BuildConfigError(t *testing.T) {
	configRepo := &testutil.MockConfigRepository{}
	configRepo.On("LoadConfig").Return(nil, errors.New("no config"))
	builder := ProvideManifestBuilder(configRepo, &testutil.MockJobTemplateRepository{}, newChecker(),
		ProvideCustomizationEngine(), ProvideDefaultsResolver(), zap.NewNop())

	_, err := builder.Build(BuildRequest{})

	assert.EqualError(t, err, "no config")
}

func TestManifestBuilder_BuildWithCompliantJob(t *testing.T) {
	builder, _ := newTestBuilder(t, loadedTemplate(t, nil))
	job := parseDoc(t, `{
		"kind": "Job",
		"metadata": {"name": "nightly", "namespace": "reports"},
		"spec": {"template": {"spec": {"restartPolicy": "Never", "containers": [{"name": "main", "image": "custom:2"}]}}}
	}`)

	result, err := builder.Build(BuildRequest{Job: &job})

	require.NoError(t, err)
	assert.Equal(t, "reports", mustString(t, field(t, result, "/metadata/namespace")))
	assert.Equal(t, "custom:2", mustString(t, field(t, result, "/spec/template/spec/containers/0/image")))
	assert.Equal(t, "nightly", mustString(t, field(t, result, "/metadata/name")))
}

func TestManifestBuilder_BuildReportsMissingBeforeIncompatible(t *testing.T) {
	builder, _ := newTestBuilder(t, loadedTemplate(t, nil))
	job := parseDoc(t, `{"kind":"Job","spec":{"template":{"spec":{"restartPolicy":"Always"}}}}`)

	_, err := builder.Build(BuildRequest{Job: &job})

	var mismatch *domain.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"/metadata", "/spec/template/spec/containers"}, pointers(mismatch.MissingRequired))
	assert.Empty(t, mismatch.Incompatible)
	assert.Equal(t,
		"Job is missing required attributes at the following paths: /metadata, /spec/template/spec/containers",
		err.Error(),
	)
}

func TestManifestBuilder_BuildRejectsIncompatibleJob(t *testing.T) {
	builder, _ := newTestBuilder(t, loadedTemplate(t, nil))
	job := parseDoc(t, `{"kind":"Job","metadata":{},"spec":{"template":{"spec":{"restartPolicy":"Always","containers":[]}}}}`)

	_, err := builder.Build(BuildRequest{Job: &job})

	var mismatch *domain.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Empty(t, mismatch.MissingRequired)
	require.Len(t, mismatch.Incompatible, 1)
	assert.Equal(t,
		`Job has incompatible values for the following attributes: /spec/template/spec/restartPolicy must have value "Never"`,
		err.Error(),
	)
}

func TestManifestBuilder_CustomizationOrder(t *testing.T) {
	stored := `[{"op":"replace","path":"/metadata/labels/team","value":"data"}]`
	builder, _ := newTestBuilder(t, loadedTemplate(t, stored))

	result, err := builder.Build(BuildRequest{
		Overrides: JobOverrides{Labels: map[string]string{"team": "override"}},
		Customizations: []any{
			map[string]any{"op": "test", "path": "/metadata/labels/team", "value": "data"},
			map[string]any{"op": "add", "path": "/metadata/labels/stage", "value": "prod"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"team":"data","stage":"prod"}`, field(t, result, "/metadata/labels").String())
}

func TestManifestBuilder_GivenOverridesSkipDefaults(t *testing.T) {
	builder, _ := newTestBuilder(t, loadedTemplate(t, nil))

	result, err := builder.Build(BuildRequest{
		Overrides: JobOverrides{Namespace: stringPtr(""), Image: stringPtr("busybox")},
	})

	require.NoError(t, err)
	assert.Equal(t, "", mustString(t, field(t, result, "/metadata/namespace")))
	assert.Equal(t, "busybox", mustString(t, field(t, result, "/spec/template/spec/containers/0/image")))
}

func TestManifestBuilder_InvalidStoredCustomizations(t *testing.T) {
	builder, _ := newTestBuilder(t, loadedTemplate(t, "not json"))

	_, err := builder.Build(BuildRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid customizations in job template 'default'")
	assert.ErrorIs(t, err, &domain.PatchError{Kind: domain.DecodeFailure})
}

func TestManifestBuilder_InvalidOverrides(t *testing.T) {
	builder, _ := newTestBuilder(t, loadedTemplate(t, nil))

	_, err := builder.Build(BuildRequest{Overrides: JobOverrides{Namespace: stringPtr("Bad_NS")}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid job overrides")
}

func TestManifestBuilder_FailingCustomizationAbortsBuild(t *testing.T) {
	builder, _ := newTestBuilder(t, loadedTemplate(t, nil))

	result, err := builder.Build(BuildRequest{
		Customizations: `[{"op":"add","path":"/metadata/labels/x","value":"1"},{"op":"remove","path":"/spec/missing"}]`,
	})

	assert.ErrorIs(t, err, &domain.PatchError{Kind: domain.PathNotFound})
	assert.True(t, result.Equal(domain.Document{}))
}

func TestManifestBuilder_Check(t *testing.T) {
	builder, _ := newTestBuilder(t, loadedTemplate(t, nil))
	template, err := builder.LoadTemplate("")
	require.NoError(t, err)
	job := parseDoc(t, `{"kind":"Job","spec":{"template":{"spec":{"restartPolicy":"OnFailure"}}}}`)

	report, err := builder.Check(job, template)

	require.NoError(t, err)
	assert.Equal(t, []string{"/metadata", "/spec/template/spec/containers"}, pointers(report.MissingRequired))
	require.Len(t, report.Incompatible, 1)
	assert.Equal(t, "/spec/template/spec/restartPolicy", report.Incompatible[0].Path.String())
}

func mustString(t *testing.T, doc domain.Document) string {
	t.Helper()
	s, ok := doc.AsString()
	require.True(t, ok, "expected a string, got %s", doc)
	return s
}

func TestManifestBuilder_LogsSkippedImageDefault(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	configRepo := &testutil.MockConfigRepository{}
	configRepo.On("LoadConfig").Return(builderConfig(), nil)
	templateRepo := &testutil.MockJobTemplateRepository{}
	templateRepo.On("LoadTemplate", mock.Anything).Return(loadedTemplate(t, nil), nil)
	builder := ProvideManifestBuilder(
		configRepo,
		templateRepo,
		newChecker(),
		ProvideCustomizationEngine(),
		ProvideDefaultsResolver(),
		zap.New(core),
	)
	job := parseDoc(t, `{"kind":"Job","metadata":{},"spec":{"template":{"spec":{"restartPolicy":"Never","containers":[]}}}}`)

	result, err := builder.Build(BuildRequest{Job: &job})

	require.NoError(t, err)
	_, hasImage := domain.Get(result, ImagePath)
	assert.False(t, hasImage)
	skipped := logs.FilterMessage("default image not applied, manifest has no first container")
	require.Equal(t, 1, skipped.Len())
	assert.Equal(t, "/spec/template/spec/containers/0", skipped.All()[0].ContextMap()["path"])
}
