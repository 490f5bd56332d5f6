package events

const (
	// SubjectScoreIngest is the inbound feed of raw provider scores from
	// upstream analysis pipelines.
	SubjectScoreIngest = "rubric.score.ingest"

	SubjectDashboardStats = "rubric.dashboard.stats"

	StreamName = "RUBRIC_EVENTS"
)

func SubjectConfigSaved(projectID string) string   { return "rubric.config." + projectID + ".saved" }
func SubjectConfigDeleted(projectID string) string { return "rubric.config." + projectID + ".deleted" }

func SubjectScoreUpdated(projectID string) string { return "rubric.score." + projectID + ".updated" }

func SubjectRankingRecomputed(projectID string) string {
	return "rubric.ranking." + projectID + ".recomputed"
}

func SubjectReportGenerated(projectID string) string {
	return "rubric.report." + projectID + ".generated"
}
