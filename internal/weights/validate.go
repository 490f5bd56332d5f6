package weights

import "fmt"

// Tolerances for weight-sum checks. Category sums are checked tightly;
// criteria sums get a looser bound because relative weights are routinely
// entered with two decimals (33.33 + 33.33 + 33.34).
const (
	CategorySumTolerance = 0.01
	CriteriaSumTolerance = 0.1
)

// ValidationError points at the offending category or criterion.
type ValidationError struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// ValidationResult reports every violated rule; it is never short-circuited
// past the empty-configuration check. Warnings do not block a save.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []string          `json:"warnings,omitempty"`
}

func (r *ValidationResult) addError(path, format string, args ...interface{}) {
	r.Errors = append(r.Errors, ValidationError{
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	})
}

// Validate checks a configuration against all rules and reports every
// violation. Rules, in order:
//
//  1. at least one category exists
//  2. category weights sum to 100 (±0.01)
//  3. every category has a display name and a non-negative weight
//  4. every category has at least one criterion
//  5. per category, relative criterion weights sum to 100 (±0.1)
//  6. every criterion has a display name
//  7. machine names are unique, category names across the configuration and
//     criterion names within their category (the store enforces the same
//     uniqueness, so a collision must surface here rather than as an opaque
//     persistence error)
func Validate(categories []Category) ValidationResult {
	result := ValidationResult{}

	if len(categories) == 0 {
		result.addError("categories", "at least one category is required")
		return result
	}

	total := TotalCategoryWeight(categories)
	if abs(total-100) >= CategorySumTolerance {
		result.addError("categories", "category weights must sum to 100%% (currently %.2f%%)", total)
	}

	seenCategories := make(map[string]int)
	for i, cat := range categories {
		path := fmt.Sprintf("categories[%d]", i)
		label := cat.DisplayName
		if label == "" {
			label = cat.Name
		}
		if label == "" {
			label = fmt.Sprintf("category %d", i+1)
		}

		if cat.DisplayName == "" {
			result.addError(path+".display_name", "category %q must have a display name", label)
		}
		if cat.Name != "" {
			if first, dup := seenCategories[cat.Name]; dup {
				result.addError(path+".name", "category machine name %q duplicates categories[%d]", cat.Name, first)
			} else {
				seenCategories[cat.Name] = i
			}
		}
		if cat.Weight < 0 {
			result.addError(path+".weight", "category %q has a negative weight", label)
		}

		if len(cat.Criteria) == 0 {
			result.addError(path+".criteria", "category %q must have at least one criterion", label)
			continue
		}

		critTotal := TotalCriteriaWeight(cat.Criteria)
		if abs(critTotal-100) > CriteriaSumTolerance {
			result.addError(path+".criteria", "criteria weights in %q must sum to 100%% (currently %.1f%%)", label, critTotal)
		}

		seenCriteria := make(map[string]int)
		for j, crit := range cat.Criteria {
			critPath := fmt.Sprintf("%s.criteria[%d]", path, j)
			if crit.DisplayName == "" {
				result.addError(critPath+".display_name", "criterion %d in %q must have a display name", j+1, label)
			}
			if crit.Name != "" {
				if first, dup := seenCriteria[crit.Name]; dup {
					result.addError(critPath+".name", "criterion machine name %q duplicates criteria[%d] in %q", crit.Name, first, label)
				} else {
					seenCriteria[crit.Name] = j
				}
			}
			if crit.Weight <= 0 {
				critLabel := crit.DisplayName
				if critLabel == "" {
					critLabel = crit.Name
				}
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("criterion %q has zero weight", critLabel))
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
