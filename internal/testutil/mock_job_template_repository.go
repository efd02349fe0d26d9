package testutil

import (
	"kjob/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockJobTemplateRepository struct {
	mock.Mock
}

func (m *MockJobTemplateRepository) LoadTemplate(template domain.JobTemplate) (*domain.LoadedTemplate, error) {
	args := m.Called(template)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadedTemplate), args.Error(1)
}

func (m *MockJobTemplateRepository) LoadDocument(path string) (domain.Document, error) {
	args := m.Called(path)
	return args.Get(0).(domain.Document), args.Error(1)
}

func (m *MockJobTemplateRepository) SaveDocument(path string, doc domain.Document) error {
	args := m.Called(path, doc)
	return args.Error(0)
}
