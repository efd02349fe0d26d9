package core

import (
	"kjob/internal/core/domain"
)

const DefaultContainerName = "kjob-job"

// BaseJobManifest returns the manifest every job starts from when its
// template file is absent.
func BaseJobManifest() domain.Document {
	container := domain.Map(
		domain.Field{Key: "name", Value: domain.String(DefaultContainerName)},
		domain.Field{Key: "env", Value: domain.List()},
	)
	podSpec := domain.Map(
		domain.Field{Key: "restartPolicy", Value: domain.String("Never")},
		domain.Field{Key: "containers", Value: domain.List(container)},
	)
	return domain.Map(
		domain.Field{Key: "apiVersion", Value: domain.String("batch/v1")},
		domain.Field{Key: "kind", Value: domain.String("Job")},
		domain.Field{Key: "metadata", Value: domain.Map(
			domain.Field{Key: "labels", Value: domain.Map()},
		)},
		domain.Field{Key: "spec", Value: domain.Map(
			domain.Field{Key: "parallelism", Value: domain.Number(1)},
			domain.Field{Key: "completions", Value: domain.Number(1)},
			domain.Field{Key: "template", Value: domain.Map(
				domain.Field{Key: "spec", Value: podSpec},
			)},
		)},
	)
}
