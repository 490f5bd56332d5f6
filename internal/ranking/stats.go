package ranking

import "math"

// Stats describes the distribution of overall scores across a ranking.
type Stats struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	WinnerMargin float64 `json:"winner_margin"`
}

// Summarize computes distribution statistics over a ranking. StdDev is the
// population standard deviation. WinnerMargin is the gap between the top two
// entries; 0 when fewer than two providers competed.
func Summarize(entries []Entry) Stats {
	if len(entries) == 0 {
		return Stats{}
	}

	min, max, sum := entries[0].OverallScore, entries[0].OverallScore, 0.0
	for _, e := range entries {
		if e.OverallScore < min {
			min = e.OverallScore
		}
		if e.OverallScore > max {
			max = e.OverallScore
		}
		sum += e.OverallScore
	}
	mean := sum / float64(len(entries))

	var variance float64
	for _, e := range entries {
		d := e.OverallScore - mean
		variance += d * d
	}
	variance /= float64(len(entries))

	stats := Stats{
		Min:    round2(min),
		Max:    round2(max),
		Mean:   round2(mean),
		StdDev: round2(math.Sqrt(variance)),
	}
	if len(entries) > 1 {
		stats.WinnerMargin = round2(entries[0].OverallScore - entries[1].OverallScore)
	}
	return stats
}

// DashboardSummary is the aggregate tile feeding project dashboards.
type DashboardSummary struct {
	ProviderCount     int     `json:"provider_count"`
	TopPerformer      string  `json:"top_performer,omitempty"`
	TopScore          float64 `json:"top_score"`
	AverageScore      float64 `json:"average_score"`
	AverageCompliance float64 `json:"average_compliance"`
}

// Summary condenses a ranking into the dashboard tile.
func Summary(entries []Entry) DashboardSummary {
	s := DashboardSummary{ProviderCount: len(entries)}
	if len(entries) == 0 {
		return s
	}

	s.TopPerformer = entries[0].Provider
	s.TopScore = entries[0].OverallScore

	var scoreSum, complianceSum float64
	for _, e := range entries {
		scoreSum += e.OverallScore
		complianceSum += e.CompliancePercentage
	}
	s.AverageScore = round2(scoreSum / float64(len(entries)))
	s.AverageCompliance = round2(complianceSum / float64(len(entries)))
	return s
}
