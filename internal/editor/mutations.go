package editor

import (
	"fmt"

	"github.com/evalhq/rubric/internal/weights"
)

// CategoryUpdate carries the fields of a category edit; nil fields are left
// untouched. Changing DisplayName re-derives the machine name unless Name is
// set explicitly in the same update.
type CategoryUpdate struct {
	DisplayName          *string
	DisplayNameLocalized *string
	Name                 *string
	Weight               *float64
	Color                *string
}

// CriterionUpdate is the criterion counterpart of CategoryUpdate. Weight is
// relative, like the stored representation.
type CriterionUpdate struct {
	DisplayName          *string
	DisplayNameLocalized *string
	Name                 *string
	Description          *string
	Weight               *weights.Relative
	Keywords             []string
}

// AddCategory appends a new category with weight 0, the next palette color,
// and a machine name derived from the display name. The caller decides the
// weight afterwards; a fresh category never steals weight from its siblings.
func (s *Session) AddCategory(displayName string) error {
	return s.edit(func() error {
		if displayName == "" {
			return fmt.Errorf("category display name is required")
		}
		s.draft = append(s.draft, weights.Category{
			Name:        weights.Slugify(displayName),
			DisplayName: displayName,
			Weight:      0,
			Color:       weights.NextColor(len(s.draft)),
			SortOrder:   len(s.draft) + 1,
		})
		return nil
	})
}

// AddCriterion appends a criterion whose relative weight is the category's
// unallocated remainder, so a fully allocated category gets a zero-weight
// criterion rather than an over-allocated one.
func (s *Session) AddCriterion(categorySlug, displayName string) error {
	return s.edit(func() error {
		if displayName == "" {
			return fmt.Errorf("criterion display name is required")
		}
		cat, err := s.findCategory(categorySlug)
		if err != nil {
			return err
		}
		cat.Criteria = append(cat.Criteria, weights.Criterion{
			Name:        weights.Slugify(displayName),
			DisplayName: displayName,
			Weight:      weights.UnallocatedWeight(*cat),
			SortOrder:   len(cat.Criteria) + 1,
		})
		return nil
	})
}

// UpdateCategory applies a partial edit to one category.
func (s *Session) UpdateCategory(slug string, upd CategoryUpdate) error {
	return s.edit(func() error {
		cat, err := s.findCategory(slug)
		if err != nil {
			return err
		}
		if upd.DisplayName != nil {
			cat.DisplayName = *upd.DisplayName
			if upd.Name == nil {
				cat.Name = weights.Slugify(*upd.DisplayName)
			}
		}
		if upd.Name != nil {
			cat.Name = weights.Slugify(*upd.Name)
		}
		if upd.DisplayNameLocalized != nil {
			cat.DisplayNameLocalized = *upd.DisplayNameLocalized
		}
		if upd.Weight != nil {
			if *upd.Weight < 0 {
				return fmt.Errorf("category weight must not be negative")
			}
			cat.Weight = *upd.Weight
		}
		if upd.Color != nil {
			cat.Color = *upd.Color
		}
		return nil
	})
}

// UpdateCriterion applies a partial edit to one criterion.
func (s *Session) UpdateCriterion(categorySlug, criterionSlug string, upd CriterionUpdate) error {
	return s.edit(func() error {
		_, crit, err := s.findCriterion(categorySlug, criterionSlug)
		if err != nil {
			return err
		}
		if upd.DisplayName != nil {
			crit.DisplayName = *upd.DisplayName
			if upd.Name == nil {
				crit.Name = weights.Slugify(*upd.DisplayName)
			}
		}
		if upd.Name != nil {
			crit.Name = weights.Slugify(*upd.Name)
		}
		if upd.DisplayNameLocalized != nil {
			crit.DisplayNameLocalized = *upd.DisplayNameLocalized
		}
		if upd.Description != nil {
			crit.Description = *upd.Description
		}
		if upd.Weight != nil {
			if *upd.Weight < 0 {
				return fmt.Errorf("criterion weight must not be negative")
			}
			crit.Weight = *upd.Weight
		}
		if upd.Keywords != nil {
			crit.Keywords = append([]string(nil), upd.Keywords...)
		}
		return nil
	})
}

// DeleteCategory removes a category and its criteria. Remaining weights are
// deliberately left alone; the validation step surfaces the gap instead of
// silently renormalizing.
func (s *Session) DeleteCategory(slug string) error {
	return s.edit(func() error {
		for i := range s.draft {
			if s.draft[i].Name == slug {
				s.draft = append(s.draft[:i], s.draft[i+1:]...)
				renumberCategories(s.draft)
				return nil
			}
		}
		return fmt.Errorf("category %q not found", slug)
	})
}

// DeleteCriterion removes one criterion without renormalizing its siblings.
func (s *Session) DeleteCriterion(categorySlug, criterionSlug string) error {
	return s.edit(func() error {
		cat, err := s.findCategory(categorySlug)
		if err != nil {
			return err
		}
		for i := range cat.Criteria {
			if cat.Criteria[i].Name == criterionSlug {
				cat.Criteria = append(cat.Criteria[:i], cat.Criteria[i+1:]...)
				renumberCriteria(cat.Criteria)
				return nil
			}
		}
		return fmt.Errorf("criterion %q not found in category %q", criterionSlug, categorySlug)
	})
}

// DistributeCategoryWeights splits 100 evenly across all categories.
func (s *Session) DistributeCategoryWeights() error {
	return s.edit(func() error {
		if len(s.draft) == 0 {
			return fmt.Errorf("no categories to distribute across")
		}
		shares := weights.DistributeEvenly(len(s.draft), 100)
		for i := range s.draft {
			s.draft[i].Weight = float64(shares[i])
		}
		return nil
	})
}

// DistributeCriterionWeights splits the category's relative budget of 100
// evenly across its criteria.
func (s *Session) DistributeCriterionWeights(categorySlug string) error {
	return s.edit(func() error {
		cat, err := s.findCategory(categorySlug)
		if err != nil {
			return err
		}
		if len(cat.Criteria) == 0 {
			return fmt.Errorf("category %q has no criteria to distribute across", categorySlug)
		}
		shares := weights.DistributeEvenly(len(cat.Criteria), 100)
		for i := range cat.Criteria {
			cat.Criteria[i].Weight = weights.Relative(shares[i])
		}
		return nil
	})
}

// ReorderCategories applies a new ordering given as the full list of
// category machine names.
func (s *Session) ReorderCategories(slugs []string) error {
	return s.edit(func() error {
		if len(slugs) != len(s.draft) {
			return fmt.Errorf("reorder must list all %d categories", len(s.draft))
		}
		reordered := make([]weights.Category, 0, len(s.draft))
		for _, slug := range slugs {
			cat, err := s.findCategory(slug)
			if err != nil {
				return err
			}
			reordered = append(reordered, *cat)
		}
		if err := uniqueSlugs(slugs); err != nil {
			return err
		}
		s.draft = reordered
		renumberCategories(s.draft)
		return nil
	})
}

// ReorderCriteria applies a new ordering of one category's criteria.
func (s *Session) ReorderCriteria(categorySlug string, slugs []string) error {
	return s.edit(func() error {
		cat, err := s.findCategory(categorySlug)
		if err != nil {
			return err
		}
		if len(slugs) != len(cat.Criteria) {
			return fmt.Errorf("reorder must list all %d criteria", len(cat.Criteria))
		}
		if err := uniqueSlugs(slugs); err != nil {
			return err
		}
		reordered := make([]weights.Criterion, 0, len(cat.Criteria))
		for _, slug := range slugs {
			found := false
			for _, crit := range cat.Criteria {
				if crit.Name == slug {
					reordered = append(reordered, crit)
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("criterion %q not found in category %q", slug, categorySlug)
			}
		}
		cat.Criteria = reordered
		renumberCriteria(cat.Criteria)
		return nil
	})
}

// SetCriterionAbsoluteWeight edits a criterion in absolute terms, converting
// to the stored relative representation on write. The category must carry
// weight; an absolute share of a zero-weight category is undefined.
func (s *Session) SetCriterionAbsoluteWeight(categorySlug, criterionSlug string, abs weights.Absolute) error {
	return s.edit(func() error {
		cat, crit, err := s.findCriterion(categorySlug, criterionSlug)
		if err != nil {
			return err
		}
		if abs < 0 {
			return fmt.Errorf("absolute weight must not be negative")
		}
		if cat.Weight == 0 {
			return fmt.Errorf("category %q has zero weight, set its weight before editing criteria in absolute terms", categorySlug)
		}
		crit.Weight = abs.Relative(cat.Weight)
		return nil
	})
}

// CriterionAbsoluteWeight reads a criterion's weight in absolute terms.
func (s *Session) CriterionAbsoluteWeight(categorySlug, criterionSlug string) (weights.Absolute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, crit, err := s.findCriterion(categorySlug, criterionSlug)
	if err != nil {
		return 0, err
	}
	return crit.Weight.Absolute(cat.Weight), nil
}

func renumberCategories(categories []weights.Category) {
	for i := range categories {
		categories[i].SortOrder = i + 1
	}
}

func renumberCriteria(criteria []weights.Criterion) {
	for i := range criteria {
		criteria[i].SortOrder = i + 1
	}
}

func uniqueSlugs(slugs []string) error {
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if seen[slug] {
			return fmt.Errorf("duplicate slug %q in reorder", slug)
		}
		seen[slug] = true
	}
	return nil
}
