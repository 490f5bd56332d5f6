// Package weights defines the two-level weighted rubric model: categories
// carrying a share of the configuration total, criteria carrying a share of
// their category. All functions are pure and total; validation is the only
// reporting mechanism and nothing in this package returns an error.
package weights

import (
	"math"

	"github.com/google/uuid"
)

// Relative is a criterion's share of its own category. Criteria within one
// category sum to 100.
type Relative float64

// Absolute is a criterion's share of the configuration total. All criteria
// across the configuration sum to 100.
//
// The two representations must never be mixed silently; conversion happens
// only through Absolute/RelativeWeights and the methods below.
type Absolute float64

// Category is a top-level weighted grouping of criteria.
type Category struct {
	ID                   *uuid.UUID  `json:"id,omitempty"`
	Name                 string      `json:"name"`
	DisplayName          string      `json:"display_name"`
	DisplayNameLocalized string      `json:"display_name_localized,omitempty"`
	Weight               float64     `json:"weight"` // percent of total, 0-100
	Color                string      `json:"color"`
	SortOrder            int         `json:"sort_order"`
	Criteria             []Criterion `json:"criteria"`
}

// Criterion is a leaf-level scored attribute within a category. Weight is
// stored in relative form.
type Criterion struct {
	ID                   *uuid.UUID `json:"id,omitempty"`
	CategoryID           *uuid.UUID `json:"category_id,omitempty"`
	Name                 string     `json:"name"`
	DisplayName          string     `json:"display_name"`
	DisplayNameLocalized string     `json:"display_name_localized,omitempty"`
	Description          string     `json:"description,omitempty"`
	Weight               Relative   `json:"weight"`
	Keywords             []string   `json:"keywords,omitempty"`
	SortOrder            int        `json:"sort_order"`
}

// TotalCategoryWeight sums category weights. A valid configuration sums to
// 100 within 0.01.
func TotalCategoryWeight(categories []Category) float64 {
	var sum float64
	for _, c := range categories {
		sum += c.Weight
	}
	return sum
}

// TotalCriteriaWeight sums criterion weights as stored (relative form).
func TotalCriteriaWeight(criteria []Criterion) float64 {
	var sum float64
	for _, c := range criteria {
		sum += float64(c.Weight)
	}
	return sum
}

// round2 keeps repeated conversions from accumulating floating drift.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Absolute converts a relative weight to its share of the configuration
// total. A zero-weight category yields 0.
func (r Relative) Absolute(categoryWeight float64) Absolute {
	if categoryWeight == 0 {
		return 0
	}
	return Absolute(round2(float64(r) * categoryWeight / 100))
}

// Relative converts an absolute weight back to its share of the category.
// Undefined for a zero-weight category; yields 0.
func (a Absolute) Relative(categoryWeight float64) Relative {
	if categoryWeight == 0 {
		return 0
	}
	return Relative(round2(float64(a) * 100 / categoryWeight))
}

// AbsoluteWeights converts each criterion's stored relative weight to
// absolute form, in order.
func AbsoluteWeights(criteria []Criterion, categoryWeight float64) []Absolute {
	out := make([]Absolute, len(criteria))
	for i, c := range criteria {
		out[i] = c.Weight.Absolute(categoryWeight)
	}
	return out
}

// RelativeWeights converts absolute weights back to relative form, in order.
func RelativeWeights(abs []Absolute, categoryWeight float64) []Relative {
	out := make([]Relative, len(abs))
	for i, a := range abs {
		out[i] = a.Relative(categoryWeight)
	}
	return out
}

// UnallocatedWeight returns how much of the category's relative budget (100)
// its criteria do not yet cover. Never negative.
func UnallocatedWeight(c Category) Relative {
	remaining := 100 - TotalCriteriaWeight(c.Criteria)
	if remaining < 0 {
		return 0
	}
	return Relative(round2(remaining))
}

// Clone deep-copies a category tree so drafts never alias persisted state.
func Clone(categories []Category) []Category {
	out := make([]Category, len(categories))
	for i, cat := range categories {
		out[i] = cat
		if cat.ID != nil {
			id := *cat.ID
			out[i].ID = &id
		}
		out[i].Criteria = make([]Criterion, len(cat.Criteria))
		for j, crit := range cat.Criteria {
			out[i].Criteria[j] = crit
			if crit.ID != nil {
				id := *crit.ID
				out[i].Criteria[j].ID = &id
			}
			if crit.CategoryID != nil {
				id := *crit.CategoryID
				out[i].Criteria[j].CategoryID = &id
			}
			if crit.Keywords != nil {
				out[i].Criteria[j].Keywords = append([]string(nil), crit.Keywords...)
			}
		}
	}
	return out
}
