package events

import "time"

// ScoreIngestEvent is the inbound payload on SubjectScoreIngest. Score is on
// the 0-10 scale; out-of-range values are clamped on ingest.
type ScoreIngestEvent struct {
	ProjectID string  `json:"project_id"`
	Provider  string  `json:"provider"`
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
	Source    string  `json:"source,omitempty"`
}

type ConfigSavedEvent struct {
	ProjectID   string  `json:"project_id"`
	Categories  int     `json:"categories"`
	Criteria    int     `json:"criteria"`
	TotalWeight float64 `json:"total_weight"`
}

type ConfigDeletedEvent struct {
	ProjectID string `json:"project_id"`
}

type ScoreUpdatedEvent struct {
	ProjectID string  `json:"project_id"`
	Provider  string  `json:"provider"`
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
}

type RankingRecomputedEvent struct {
	ProjectID    string  `json:"project_id"`
	Providers    int     `json:"providers"`
	TopPerformer string  `json:"top_performer,omitempty"`
	TopScore     float64 `json:"top_score"`
}

type ReportGeneratedEvent struct {
	ProjectID string `json:"project_id"`
	Version   int    `json:"version"`
	Title     string `json:"title"`
}

type StatsEvent struct {
	Projects  int       `json:"projects"`
	Timestamp time.Time `json:"timestamp"`
}
