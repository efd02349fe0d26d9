package core

import (
	"kjob/internal/core/domain"
)

// TemplateDiffer computes the structural differences that would turn a
// candidate document into its base template.
//
// Keys only present in the candidate produce nothing. Lists are compared as
// whole values. The ops are emitted in pre-order over the base's key order.
type TemplateDiffer struct{}

func ProvideTemplateDiffer() *TemplateDiffer {
	return &TemplateDiffer{}
}

// Diff returns the ops describing how candidate departs from base. It fails
// only with domain.ErrDepthExceeded.
func (d *TemplateDiffer) Diff(candidate, base domain.Document) ([]domain.DiffOp, error) {
	var ops []domain.DiffOp
	if err := d.diffValue(candidate, base, domain.Path{}, 0, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func (d *TemplateDiffer) diffValue(candidate, base domain.Document, path domain.Path, level int, ops *[]domain.DiffOp) error {
	if level > domain.MaxDepth {
		return domain.ErrDepthExceeded
	}
	if candidate.IsMap() && base.IsMap() {
		return d.diffMaps(candidate, base, path, level, ops)
	}
	if !domain.Equal(candidate, base) {
		*ops = append(*ops, domain.DiffOp{Kind: domain.DiffReplace, Path: path, Value: base})
	}
	return nil
}

func (d *TemplateDiffer) diffMaps(candidate, base domain.Document, path domain.Path, level int, ops *[]domain.DiffOp) error {
	for _, key := range base.Keys() {
		baseValue, _ := base.Field(key)
		candidateValue, present := candidate.Field(key)
		if !present {
			if _, err := domain.Depth(baseValue); err != nil {
				return err
			}
			*ops = append(*ops, domain.DiffOp{Kind: domain.DiffAdd, Path: path.Child(key), Value: baseValue})
			continue
		}
		if domain.Equal(candidateValue, baseValue) {
			continue
		}
		if err := d.diffValue(candidateValue, baseValue, path.Child(key), level+1, ops); err != nil {
			return err
		}
	}
	return nil
}
