package testutil

import (
	"context"

	"kjob/internal/core/domain"
	"kjob/internal/ports"

	"github.com/stretchr/testify/mock"
)

type MockJobRunner struct {
	mock.Mock
}

func (m *MockJobRunner) SubmitJob(ctx context.Context, manifest domain.Document) (ports.JobReference, error) {
	args := m.Called(ctx, manifest)
	return args.Get(0).(ports.JobReference), args.Error(1)
}
