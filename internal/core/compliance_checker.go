package core

import (
	"slices"

	"kjob/internal/core/domain"
)

// ComplianceChecker classifies the differences between a candidate job
// manifest and a base template.
//
// Missing keys are "missing required" violations and differing values are
// "incompatible" violations. Extra keys in the candidate are allowed. The
// same primitive backs both required-shape checks and fixed-value checks;
// which template is passed decides what is enforced.
type ComplianceChecker struct {
	differ *TemplateDiffer
}

func ProvideComplianceChecker(differ *TemplateDiffer) *ComplianceChecker {
	return &ComplianceChecker{
		differ: differ,
	}
}

// Check returns every violation of base by candidate, sorted by path.
func (c *ComplianceChecker) Check(candidate, base domain.Document) (domain.ComplianceReport, error) {
	ops, err := c.differ.Diff(candidate, base)
	if err != nil {
		return domain.ComplianceReport{}, err
	}

	var report domain.ComplianceReport
	for _, op := range ops {
		switch op.Kind {
		case domain.DiffAdd:
			report.MissingRequired = append(report.MissingRequired, op.Path)
		case domain.DiffReplace:
			report.Incompatible = append(report.Incompatible, domain.Incompatibility{Path: op.Path, Expected: op.Value})
		case domain.DiffRemove:
			// extra fields are allowed
		}
	}

	domain.SortPaths(report.MissingRequired)
	slices.SortFunc(report.Incompatible, func(a, b domain.Incompatibility) int {
		return a.Path.Compare(b.Path)
	})
	return report, nil
}

// RequireComponents fails with a *domain.SchemaMismatchError listing every
// path of base that candidate lacks.
func (c *ComplianceChecker) RequireComponents(candidate, base domain.Document) error {
	report, err := c.Check(candidate, base)
	if err != nil {
		return err
	}
	if len(report.MissingRequired) == 0 {
		return nil
	}
	return &domain.SchemaMismatchError{MissingRequired: report.MissingRequired}
}

// RequireCompatibleValues fails with a *domain.SchemaMismatchError listing
// every path where candidate disagrees with a value fixed by base.
func (c *ComplianceChecker) RequireCompatibleValues(candidate, base domain.Document) error {
	report, err := c.Check(candidate, base)
	if err != nil {
		return err
	}
	if len(report.Incompatible) == 0 {
		return nil
	}
	return &domain.SchemaMismatchError{Incompatible: report.Incompatible}
}
