package handler

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"kjob/internal/cli/output"
	"kjob/internal/core"
	"kjob/internal/core/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

type CheckCommandHandler struct {
	builder            *core.ManifestBuilder
	templateRepository core.JobTemplateRepository
	logger             *zap.Logger
}

func ProvideCheckCommandHandler(
	builder *core.ManifestBuilder,
	templateRepository core.JobTemplateRepository,
	logger *zap.Logger,
) CheckCommandHandler {
	return CheckCommandHandler{
		builder:            builder,
		templateRepository: templateRepository,
		logger:             logger,
	}
}

type checkResult struct {
	report domain.ComplianceReport
	err    error
}

// Handle checks every job file against the template and prints all
// violations per file. The returned error aggregates the failing files.
func (h *CheckCommandHandler) Handle(ctx context.Context, templateName string, paths []string, w io.Writer) error {
	template, err := h.builder.LoadTemplate(templateName)
	if err != nil {
		return err
	}

	results := make([]checkResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = h.checkFile(path, template)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	output.FprintHeader(w, fmt.Sprintf("Checking %d %s against template '%s'",
		len(paths), output.Plural(len(paths), "job", "jobs"), template.Name))

	var errs []error
	for i, path := range paths {
		result := results[i]
		switch {
		case result.err != nil:
			output.FprintFailure(w, fmt.Sprintf("%s: %v", path, result.err))
			errs = append(errs, fmt.Errorf("%s: %w", path, result.err))
		case result.report.Empty():
			output.FprintSuccess(w, path)
		default:
			output.FprintFailure(w, path)
			printReport(w, result.report)
			errs = append(errs, fmt.Errorf("%s: %w", path, result.report.Err()))
		}
	}
	return utilerrors.NewAggregate(errs)
}

func (h *CheckCommandHandler) checkFile(path string, template *domain.LoadedTemplate) checkResult {
	job, err := h.templateRepository.LoadDocument(path)
	if err != nil {
		return checkResult{err: err}
	}
	report, err := h.builder.Check(job, template)
	h.logger.Debug("checked job",
		zap.String("path", path),
		zap.Int("missing", len(report.MissingRequired)),
		zap.Int("incompatible", len(report.Incompatible)),
	)
	return checkResult{report: report, err: err}
}

func printReport(w io.Writer, report domain.ComplianceReport) {
	if len(report.MissingRequired) > 0 {
		fmt.Fprintf(w, "  %s\n", output.Warning("missing required attributes:"))
		for _, path := range report.MissingRequired {
			output.FprintBullet(w, path.String())
		}
	}
	if len(report.Incompatible) > 0 {
		fmt.Fprintf(w, "  %s\n", output.Warning("incompatible values:"))
		for _, incompatibility := range report.Incompatible {
			output.FprintBullet(w, incompatibility.String())
		}
	}
}
