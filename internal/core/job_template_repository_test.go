package core

import (
	"errors"
	"testing"

	"kjob/internal/core/domain"
	"kjob/internal/ports"
	"kjob/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemJobTemplateRepository_DefaultFallsBackToBaseManifest(t *testing.T) {
	repo := ProvideFileSystemJobTemplateRepository(testutil.NewTestFileSystem(t))
	template := domain.JobTemplate{
		Name:            domain.DefaultTemplateName,
		ManifestPath:    "~/.kjob/templates/job.yaml",
		RequiredPath:    "~/.kjob/templates/job.yaml",
		FixedValuesPath: "~/.kjob/templates/job.yaml",
	}

	loaded, err := repo.LoadTemplate(template)

	require.NoError(t, err)
	assert.True(t, loaded.Manifest.Equal(BaseJobManifest()))
	assert.True(t, loaded.Required.Equal(loaded.Manifest))
	assert.True(t, loaded.FixedValues.Equal(loaded.Manifest))
}

func TestFileSystemJobTemplateRepository_MissingNamedTemplate(t *testing.T) {
	repo := ProvideFileSystemJobTemplateRepository(testutil.NewTestFileSystem(t))

	_, err := repo.LoadTemplate(domain.JobTemplate{Name: "gpu", ManifestPath: "/templates/gpu.yaml"})

	assert.EqualError(t, err, "manifest for job template 'gpu' not found at /templates/gpu.yaml")
}

func TestFileSystemJobTemplateRepository_LoadsSeparateTemplates(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	require.NoError(t, fs.WriteFile("/templates/job.yaml", []byte(`
apiVersion: batch/v1
kind: Job
spec:
  template:
    spec:
      restartPolicy: Never
`), ports.ReadWrite))
	require.NoError(t, fs.WriteFile("/templates/required.json", []byte(`{"kind":"Job","metadata":{}}`), ports.ReadWrite))
	repo := ProvideFileSystemJobTemplateRepository(fs)

	loaded, err := repo.LoadTemplate(domain.JobTemplate{
		Name:            "strict",
		ManifestPath:    "/templates/job.yaml",
		RequiredPath:    "/templates/required.json",
		FixedValuesPath: "/templates/job.yaml",
		Customizations:  "[]",
	})

	require.NoError(t, err)
	assert.Equal(t, "strict", loaded.Name)
	assert.Equal(t, `{"apiVersion":"batch/v1","kind":"Job","spec":{"template":{"spec":{"restartPolicy":"Never"}}}}`, loaded.Manifest.String())
	assert.Equal(t, `{"kind":"Job","metadata":{}}`, loaded.Required.String())
	assert.True(t, loaded.FixedValues.Equal(loaded.Manifest))
	assert.Equal(t, "[]", loaded.Customizations)
}

func TestFileSystemJobTemplateRepository_MissingRequiredFile(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	require.NoError(t, fs.WriteFile("/templates/job.yaml", []byte("kind: Job\n"), ports.ReadWrite))
	repo := ProvideFileSystemJobTemplateRepository(fs)

	_, err := repo.LoadTemplate(domain.JobTemplate{
		Name:         "strict",
		ManifestPath: "/templates/job.yaml",
		RequiredPath: "/templates/missing.yaml",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load required template for 'strict'")
}

func TestFileSystemJobTemplateRepository_InvalidManifest(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	require.NoError(t, fs.WriteFile("/templates/job.yaml", []byte("kind: [Job\n"), ports.ReadWrite))
	repo := ProvideFileSystemJobTemplateRepository(fs)

	_, err := repo.LoadTemplate(domain.JobTemplate{Name: "broken", ManifestPath: "/templates/job.yaml"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load manifest for job template 'broken'")
}

func TestFileSystemJobTemplateRepository_SaveDocumentRoundTrip(t *testing.T) {
	fs := testutil.NewTestFileSystem(t)
	repo := ProvideFileSystemJobTemplateRepository(fs)

	require.NoError(t, repo.SaveDocument("~/.kjob/templates/job.yaml", BaseJobManifest()))
	loaded, err := repo.LoadDocument("~/.kjob/templates/job.yaml")

	require.NoError(t, err)
	assert.True(t, loaded.Equal(BaseJobManifest()))
	assert.Equal(t, BaseJobManifest().String(), loaded.String())
}

func TestBaseJobManifest(t *testing.T) {
	manifest := BaseJobManifest()

	assert.Equal(t,
		`{"apiVersion":"batch/v1","kind":"Job","metadata":{"labels":{}},`+
			`"spec":{"parallelism":1,"completions":1,"template":{"spec":{"restartPolicy":"Never",`+
			`"containers":[{"name":"kjob-job","env":[]}]}}}}`,
		manifest.String(),
	)
	_, hasImage := domain.Get(manifest, ImagePath)
	assert.False(t, hasImage)
}

func TestFileSystemJobTemplateRepository_FileSystemErrors(t *testing.T) {
	fs := new(testutil.MockFileSystem)
	fs.On("FileExists", "/templates/job.yaml").Return(false, errors.New("permission denied"))
	fs.On("ReadFile", "/templates/other.yaml").Return(nil, errors.New("permission denied"))
	repo := ProvideFileSystemJobTemplateRepository(fs)

	_, err := repo.LoadTemplate(domain.JobTemplate{Name: "default", ManifestPath: "/templates/job.yaml"})
	assert.EqualError(t, err, "permission denied")

	_, err = repo.LoadDocument("/templates/other.yaml")
	assert.EqualError(t, err, "failed to read /templates/other.yaml: permission denied")

	fs.AssertExpectations(t)
}

func TestFileSystemJobTemplateRepository_SaveDocumentIsWorldReadable(t *testing.T) {
	fs := new(testutil.MockFileSystem)
	fs.On("WriteFile", "/templates/job.yaml", []byte("kind: Job\n"), ports.ReadAllWriteOwner).Return(nil)
	repo := ProvideFileSystemJobTemplateRepository(fs)

	err := repo.SaveDocument("/templates/job.yaml", domain.Map(domain.Field{Key: "kind", Value: domain.String("Job")}))

	require.NoError(t, err)
	fs.AssertExpectations(t)
}
