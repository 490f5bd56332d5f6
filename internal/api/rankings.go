package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/evalhq/rubric/internal/ranking"
	"github.com/evalhq/rubric/internal/store"
	"github.com/evalhq/rubric/internal/weights"
)

type RankingHandler struct {
	store store.Store
}

func NewRankingHandler(s store.Store) *RankingHandler {
	return &RankingHandler{store: s}
}

type RankingResponse struct {
	ProjectID string            `json:"project_id"`
	Entries   []ranking.Entry   `json:"entries"`
	Stats     ranking.Stats     `json:"stats"`
	Overrides ranking.Overrides `json:"overrides,omitempty"`
}

// Get recomputes the ranking from the stored configuration and scores.
// Rankings are never cached; the response always reflects current data.
func (h *RankingHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	entries, ok := h.rank(w, r, projectID, nil)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, RankingResponse{
		ProjectID: projectID,
		Entries:   entries,
		Stats:     ranking.Summarize(entries),
	})
}

type PreviewRequest struct {
	Overrides map[string]weights.Absolute `json:"overrides"`
}

// Preview recomputes the ranking with transient what-if weight overrides.
// Nothing is persisted; the stored configuration is untouched.
func (h *RankingHandler) Preview(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries, ok := h.rank(w, r, projectID, ranking.Overrides(req.Overrides))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, RankingResponse{
		ProjectID: projectID,
		Entries:   entries,
		Stats:     ranking.Summarize(entries),
		Overrides: req.Overrides,
	})
}

type DashboardResponse struct {
	ProjectID string                   `json:"project_id"`
	Summary   ranking.DashboardSummary `json:"summary"`
	Stats     ranking.Stats            `json:"stats"`
}

func (h *RankingHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	entries, ok := h.rank(w, r, projectID, nil)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, DashboardResponse{
		ProjectID: projectID,
		Summary:   ranking.Summary(entries),
		Stats:     ranking.Summarize(entries),
	})
}

func (h *RankingHandler) rank(w http.ResponseWriter, r *http.Request, projectID string, overrides ranking.Overrides) ([]ranking.Entry, bool) {
	categories, rawScores, err := h.loadInputs(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}

	start := time.Now()
	entries := ranking.Rank(categories, rawScores, overrides)
	recomputeDuration.Observe(time.Since(start).Seconds())

	if entries == nil {
		entries = []ranking.Entry{}
	}
	return entries, true
}

func (h *RankingHandler) loadInputs(ctx context.Context, projectID string) ([]weights.Category, []ranking.RawScore, error) {
	categories, err := h.store.LoadConfiguration(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	stored, err := h.store.ListRawScores(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	rawScores := make([]ranking.RawScore, len(stored))
	for i, s := range stored {
		rawScores[i] = ranking.RawScore{Provider: s.Provider, Criterion: s.Criterion, Score: s.Score}
	}
	return categories, rawScores, nil
}
