// Package ranking recomputes provider rankings from a rubric configuration
// and raw scores. Everything here is pure and deterministic: the same inputs
// always produce the same ordered slice, regardless of input order.
package ranking

import (
	"math"
	"sort"

	"github.com/evalhq/rubric/internal/weights"
)

// MaxScore is the upper bound of the raw scoring scale.
const MaxScore = 10.0

// RawScore is one provider's score for one criterion. Criterion is the
// criterion's machine name, not its UUID: saved configurations are replaced
// wholesale and regenerate IDs, machine names survive.
type RawScore struct {
	Provider  string  `json:"provider"`
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"` // 0-10
}

// Overrides carries transient what-if absolute weights keyed by criterion
// machine name. Overrides are never persisted; they exist only for the
// duration of one recalculation.
type Overrides map[string]weights.Absolute

// Entry is one provider's position in a computed ranking.
type Entry struct {
	Provider             string             `json:"provider"`
	OverallScore         float64            `json:"overall_score"`
	CategoryScores       map[string]float64 `json:"category_scores"`
	CompliancePercentage float64            `json:"compliance_percentage"`
	RankPosition         int                `json:"rank_position"`
	Strengths            []string           `json:"strengths"`
	Weaknesses           []string           `json:"weaknesses"`
}

const (
	strengthCount = 3
	weaknessCount = 2
)

// Rank computes the full ranking for every provider present in scores.
// Missing scores count as 0. A nil overrides map means the configured
// weights apply unchanged. Entries are sorted by overall score descending,
// ties broken by provider ID ascending.
func Rank(categories []weights.Category, scores []RawScore, overrides Overrides) []Entry {
	byProvider := groupScores(scores)

	providers := make([]string, 0, len(byProvider))
	for p := range byProvider {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	entries := make([]Entry, 0, len(providers))
	for _, p := range providers {
		entries = append(entries, score(categories, p, byProvider[p], overrides))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].OverallScore != entries[j].OverallScore {
			return entries[i].OverallScore > entries[j].OverallScore
		}
		return entries[i].Provider < entries[j].Provider
	})
	for i := range entries {
		entries[i].RankPosition = i + 1
	}
	return entries
}

func groupScores(scores []RawScore) map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	for _, s := range scores {
		m, ok := out[s.Provider]
		if !ok {
			m = make(map[string]float64)
			out[s.Provider] = m
		}
		m[s.Criterion] = clamp(s.Score)
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// score computes a single provider's entry. The overall score is the sum of
// score x effective absolute weight over every configured criterion, divided
// by 100. Category scores divide by the category's configured absolute
// weight; overrides move the numerator only, so a what-if that shrinks a
// criterion's weight shrinks the category sub-score instead of being
// renormalized away.
func score(categories []weights.Category, provider string, scores map[string]float64, overrides Overrides) Entry {
	var overall float64
	categoryScores := make(map[string]float64, len(categories))
	configured, scored := 0, 0

	for _, cat := range categories {
		var catWeighted, catConfigured float64
		for _, crit := range cat.Criteria {
			base := crit.Weight.Absolute(cat.Weight)
			abs := base
			if ov, ok := overrides[crit.Name]; ok {
				abs = ov
			}
			raw, present := scores[crit.Name]
			overall += raw * float64(abs) / 100
			catWeighted += raw * float64(abs)
			catConfigured += float64(base)

			configured++
			if present {
				scored++
			}
		}
		if catConfigured > 0 {
			categoryScores[cat.Name] = round2(catWeighted / catConfigured)
		} else {
			categoryScores[cat.Name] = 0
		}
	}

	compliance := 0.0
	if configured > 0 {
		compliance = round2(float64(scored) / float64(configured) * 100)
	}

	strengths, weaknesses := highsAndLows(categories, scores)

	return Entry{
		Provider:             provider,
		OverallScore:         round2(overall),
		CategoryScores:       categoryScores,
		CompliancePercentage: compliance,
		Strengths:            strengths,
		Weaknesses:           weaknesses,
	}
}

// highsAndLows picks the provider's best and worst scored criteria by raw
// score. Labels come from the configuration's display names; scores whose
// criterion is no longer configured keep their raw key so stale data stays
// visible instead of vanishing.
func highsAndLows(categories []weights.Category, scores map[string]float64) (strengths, weaknesses []string) {
	labels := make(map[string]string)
	for _, cat := range categories {
		for _, crit := range cat.Criteria {
			labels[crit.Name] = crit.DisplayName
		}
	}

	type scored struct {
		key   string
		label string
		value float64
	}
	items := make([]scored, 0, len(scores))
	for key, value := range scores {
		label, ok := labels[key]
		if !ok || label == "" {
			label = key
		}
		items = append(items, scored{key: key, label: label, value: value})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].value != items[j].value {
			return items[i].value > items[j].value
		}
		return items[i].key < items[j].key
	})

	for i := 0; i < len(items) && i < strengthCount; i++ {
		strengths = append(strengths, items[i].label)
	}
	for i := len(items) - 1; i >= 0 && len(weaknesses) < weaknessCount; i-- {
		weaknesses = append(weaknesses, items[i].label)
	}
	return strengths, weaknesses
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
