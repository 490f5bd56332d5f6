package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evalhq/rubric/internal/events"
	"github.com/evalhq/rubric/internal/ranking"
	"github.com/evalhq/rubric/internal/reports"
	"github.com/evalhq/rubric/internal/store"
)

type ReportsHandler struct {
	store        store.Store
	events       events.Client
	defaultTitle string
}

func NewReportsHandler(s store.Store, ev events.Client, defaultTitle string) *ReportsHandler {
	return &ReportsHandler{store: s, events: ev, defaultTitle: defaultTitle}
}

type CreateReportRequest struct {
	Title string `json:"title,omitempty"`
}

// Create snapshots the current ranking into a new report version. The
// snapshot is immutable; later score or configuration changes produce new
// versions instead of rewriting old ones.
func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	var req CreateReportRequest
	if r.Body != nil {
		// An empty body means default title.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Title == "" {
		req.Title = h.defaultTitle
	}

	categories, err := h.store.LoadConfiguration(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(categories) == 0 {
		writeError(w, http.StatusConflict, "no scoring configuration saved for this project")
		return
	}
	stored, err := h.store.ListRawScores(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rawScores := make([]ranking.RawScore, len(stored))
	for i, s := range stored {
		rawScores[i] = ranking.RawScore{Provider: s.Provider, Criterion: s.Criterion, Score: s.Score}
	}

	entries := ranking.Rank(categories, rawScores, nil)
	snapshot := reports.Build(projectID, req.Title, categories, entries)
	payload, err := json.Marshal(snapshot)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report := &store.Report{ProjectID: projectID, Title: req.Title, Snapshot: payload}
	if err := h.store.SaveReport(r.Context(), report); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectReportGenerated(projectID), events.ReportGeneratedEvent{
			ProjectID: projectID,
			Version:   report.Version,
			Title:     report.Title,
		})
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	list, err := h.store.ListReports(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*store.Report{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project_id": projectID,
		"reports":    list,
	})
}
