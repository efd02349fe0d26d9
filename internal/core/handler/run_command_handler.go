package handler

import (
	"context"
	"fmt"
	"io"

	"kjob/internal/cli/output"
	"kjob/internal/core"
	"kjob/internal/ports"

	"go.uber.org/zap"
)

type RunCommandHandler struct {
	resolver  jobResolver
	jobRunner ports.JobRunner
	logger    *zap.Logger
}

func ProvideRunCommandHandler(
	builder *core.ManifestBuilder,
	templateRepository core.JobTemplateRepository,
	engine *core.CustomizationEngine,
	jobRunner ports.JobRunner,
	logger *zap.Logger,
) RunCommandHandler {
	return RunCommandHandler{
		resolver: jobResolver{
			builder:            builder,
			templateRepository: templateRepository,
			engine:             engine,
		},
		jobRunner: jobRunner,
		logger:    logger,
	}
}

func (h *RunCommandHandler) Handle(ctx context.Context, opts JobOptions, w io.Writer) error {
	manifest, err := h.resolver.resolve(opts)
	if err != nil {
		return err
	}

	ref, err := h.jobRunner.SubmitJob(ctx, manifest)
	if err != nil {
		return err
	}
	h.logger.Debug("job submitted",
		zap.String("namespace", ref.Namespace),
		zap.String("name", ref.Name),
		zap.String("submissionId", ref.SubmissionID),
	)

	output.FprintSuccess(w, fmt.Sprintf("Submitted job %s/%s", ref.Namespace, ref.Name))
	fmt.Fprintf(w, "  %s submission id %s\n", output.SymbolArrow, output.Secondary(ref.SubmissionID))
	return nil
}
