// Package reports assembles persisted ranking snapshots: the methodology in
// force, the ranked entries, and a distribution analysis. A report is a
// point-in-time record; later configuration or score changes never rewrite
// it.
package reports

import (
	"fmt"
	"time"

	"github.com/evalhq/rubric/internal/ranking"
	"github.com/evalhq/rubric/internal/weights"
)

// ScoringModel names the evaluation methodology recorded in every report.
const ScoringModel = "two-level weighted rubric"

// Thresholds for the analysis risk factors.
const (
	thinMarginThreshold    = 0.5
	lowComplianceThreshold = 70.0
)

type Snapshot struct {
	ProjectID   string          `json:"project_id"`
	Title       string          `json:"title"`
	GeneratedAt time.Time       `json:"generated_at"`
	Methodology Methodology     `json:"methodology"`
	Ranking     []ranking.Entry `json:"ranking"`
	Analysis    Analysis        `json:"analysis"`
}

type Methodology struct {
	ScoringModel string            `json:"scoring_model"`
	TotalWeight  float64           `json:"total_weight"`
	Categories   []CategorySummary `json:"categories"`
}

type CategorySummary struct {
	Name          string  `json:"name"`
	DisplayName   string  `json:"display_name"`
	Weight        float64 `json:"weight"`
	CriteriaCount int     `json:"criteria_count"`
}

type Analysis struct {
	ranking.Stats
	RiskFactors []string `json:"risk_factors,omitempty"`
}

// Build assembles the snapshot for one project from an already computed
// ranking. Pure except for the generation timestamp.
func Build(projectID, title string, categories []weights.Category, entries []ranking.Entry) Snapshot {
	methodology := Methodology{
		ScoringModel: ScoringModel,
		TotalWeight:  weights.TotalCategoryWeight(categories),
		Categories:   make([]CategorySummary, 0, len(categories)),
	}
	for _, cat := range categories {
		methodology.Categories = append(methodology.Categories, CategorySummary{
			Name:          cat.Name,
			DisplayName:   cat.DisplayName,
			Weight:        cat.Weight,
			CriteriaCount: len(cat.Criteria),
		})
	}

	stats := ranking.Summarize(entries)
	return Snapshot{
		ProjectID:   projectID,
		Title:       title,
		GeneratedAt: time.Now().UTC(),
		Methodology: methodology,
		Ranking:     entries,
		Analysis: Analysis{
			Stats:       stats,
			RiskFactors: riskFactors(entries, stats),
		},
	}
}

func riskFactors(entries []ranking.Entry, stats ranking.Stats) []string {
	var risks []string
	if len(entries) > 1 && stats.WinnerMargin < thinMarginThreshold {
		risks = append(risks, fmt.Sprintf("winner margin of %.2f points is thin, ranking is sensitive to weight changes", stats.WinnerMargin))
	}
	for _, e := range entries {
		if e.CompliancePercentage < lowComplianceThreshold {
			risks = append(risks, fmt.Sprintf("provider %s scored on only %.0f%% of criteria", e.Provider, e.CompliancePercentage))
		}
	}
	if len(entries) == 1 {
		risks = append(risks, "single-provider evaluation, no competitive comparison possible")
	}
	return risks
}
