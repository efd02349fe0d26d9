package ports

import (
	"context"

	"kjob/internal/core/domain"
)

// JobReference identifies a submitted job.
type JobReference struct {
	Namespace    string
	Name         string
	SubmissionID string
}

type JobRunner interface {
	SubmitJob(ctx context.Context, manifest domain.Document) (JobReference, error)
}
