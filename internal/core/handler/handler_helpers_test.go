package handler

import (
	"testing"

	"kjob/internal/core"
	"kjob/internal/core/domain"
	"kjob/internal/ports"
	"kjob/internal/testutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const templateManifest = `apiVersion: batch/v1
kind: Job
metadata:
  labels: {}
spec:
  template:
    spec:
      restartPolicy: Never
      containers:
        - name: kjob-job
          env: []
`

type handlerFixture struct {
	fs                 *testutil.TestFileSystem
	configRepository   *testutil.MockConfigRepository
	templateRepository *core.FileSystemJobTemplateRepository
	engine             *core.CustomizationEngine
	builder            *core.ManifestBuilder
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	fs := testutil.NewTestFileSystem(t)
	writeFile(t, fs, "/templates/job.yaml", templateManifest)

	config := &domain.Config{
		Defaults: domain.DefaultsConfig{
			Namespace: "jobs",
			Image: domain.ImageConfig{
				Registry:   "docker.io",
				Repository: "kjob/worker",
				Tag:        "1.0.0",
			},
		},
		Templates: []domain.JobTemplate{
			{Name: domain.DefaultTemplateName, ManifestPath: "/templates/job.yaml"},
		},
	}
	configRepository := new(testutil.MockConfigRepository)
	configRepository.On("LoadConfig").Return(config, nil)

	templateRepository := core.ProvideFileSystemJobTemplateRepository(fs)
	engine := core.ProvideCustomizationEngine()
	builder := core.ProvideManifestBuilder(
		configRepository,
		templateRepository,
		core.ProvideComplianceChecker(core.ProvideTemplateDiffer()),
		engine,
		core.ProvideDefaultsResolver(),
		zap.NewNop(),
	)

	return &handlerFixture{
		fs:                 fs,
		configRepository:   configRepository,
		templateRepository: templateRepository,
		engine:             engine,
		builder:            builder,
	}
}

func writeFile(t *testing.T, fs *testutil.TestFileSystem, path, content string) {
	t.Helper()
	require.NoError(t, fs.WriteFile(path, []byte(content), ports.ReadWrite))
}

func mustGet(t *testing.T, doc domain.Document, pointer string) domain.Document {
	t.Helper()
	value, found := domain.Get(doc, domain.MustParsePointer(pointer))
	require.True(t, found, "expected a value at %s in %s", pointer, doc)
	return value
}
