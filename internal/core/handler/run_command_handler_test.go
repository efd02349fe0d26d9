package handler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"kjob/internal/core"
	"kjob/internal/core/domain"
	"kjob/internal/ports"
	"kjob/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunCommandHandler_SubmitsResolvedManifest(t *testing.T) {
	f := newHandlerFixture(t)
	jobRunner := new(testutil.MockJobRunner)
	jobRunner.On("SubmitJob", mock.Anything, mock.MatchedBy(func(manifest domain.Document) bool {
		namespace, _ := domain.Get(manifest, domain.MustParsePointer("/metadata/namespace"))
		image, _ := domain.Get(manifest, domain.MustParsePointer("/spec/template/spec/containers/0/image"))
		return namespace.Equal(domain.String("jobs")) && image.Equal(domain.String("busybox:1.36"))
	})).Return(ports.JobReference{Namespace: "jobs", Name: "report-x7k2p", SubmissionID: "abc"}, nil)
	image := "busybox:1.36"
	sut := ProvideRunCommandHandler(f.builder, f.templateRepository, f.engine, jobRunner, zap.NewNop())
	var out bytes.Buffer

	err := sut.Handle(context.Background(), JobOptions{
		Overrides: core.JobOverrides{Name: "report", Image: &image},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "+ Submitted job jobs/report-x7k2p\n  -> submission id abc\n", out.String())
	jobRunner.AssertExpectations(t)
}

func TestRunCommandHandler_DoesNotSubmitInvalidJob(t *testing.T) {
	f := newHandlerFixture(t)
	jobRunner := new(testutil.MockJobRunner)
	sut := ProvideRunCommandHandler(f.builder, f.templateRepository, f.engine, jobRunner, zap.NewNop())

	err := sut.Handle(context.Background(), JobOptions{
		Customizations: `[{"op":"test","path":"/kind","value":"CronJob"}]`,
	}, &bytes.Buffer{})

	assert.ErrorIs(t, err, &domain.PatchError{Kind: domain.TestFailed})
	jobRunner.AssertNotCalled(t, "SubmitJob", mock.Anything, mock.Anything)
}

func TestRunCommandHandler_ReturnsSubmissionError(t *testing.T) {
	f := newHandlerFixture(t)
	jobRunner := new(testutil.MockJobRunner)
	jobRunner.On("SubmitJob", mock.Anything, mock.Anything).Return(ports.JobReference{}, errors.New("forbidden"))
	sut := ProvideRunCommandHandler(f.builder, f.templateRepository, f.engine, jobRunner, zap.NewNop())
	var out bytes.Buffer

	err := sut.Handle(context.Background(), JobOptions{}, &out)

	assert.EqualError(t, err, "forbidden")
	assert.Empty(t, out.String())
}
