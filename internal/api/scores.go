package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evalhq/rubric/internal/events"
	"github.com/evalhq/rubric/internal/ranking"
	"github.com/evalhq/rubric/internal/store"
)

type ScoresHandler struct {
	store  store.Store
	events events.Client
}

func NewScoresHandler(s store.Store, ev events.Client) *ScoresHandler {
	return &ScoresHandler{store: s, events: ev}
}

type ScoreEntry struct {
	Provider  string  `json:"provider"`
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
	Source    string  `json:"source,omitempty"`
}

type PutScoresRequest struct {
	Scores []ScoreEntry `json:"scores"`
}

func (h *ScoresHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	scores, err := h.store.ListRawScores(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scores == nil {
		scores = []*store.ProviderScore{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project_id": projectID,
		"scores":     scores,
	})
}

// Put upserts a batch of raw scores. Scores land on the 0-10 scale; values
// outside it are clamped rather than rejected, matching the ingest pipeline.
func (h *ScoresHandler) Put(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	var req PutScoresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Scores) == 0 {
		writeError(w, http.StatusBadRequest, "at least one score required")
		return
	}
	for _, s := range req.Scores {
		if s.Provider == "" || s.Criterion == "" {
			writeError(w, http.StatusBadRequest, "provider and criterion required on every score")
			return
		}
	}

	saved := make([]*store.ProviderScore, 0, len(req.Scores))
	for _, s := range req.Scores {
		if s.Source == "" {
			s.Source = "manual"
		}
		ps := &store.ProviderScore{
			ProjectID: projectID,
			Provider:  s.Provider,
			Criterion: s.Criterion,
			Score:     clampScore(s.Score),
			Source:    s.Source,
		}
		if err := h.store.UpsertRawScore(r.Context(), ps); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		scoreUpserts.Inc()
		saved = append(saved, ps)

		if h.events != nil {
			_ = h.events.Publish(events.SubjectScoreUpdated(projectID), events.ScoreUpdatedEvent{
				ProjectID: projectID,
				Provider:  ps.Provider,
				Criterion: ps.Criterion,
				Score:     ps.Score,
			})
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project_id": projectID,
		"scores":     saved,
	})
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > ranking.MaxScore {
		return ranking.MaxScore
	}
	return v
}
