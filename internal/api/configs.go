package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evalhq/rubric/internal/editor"
	"github.com/evalhq/rubric/internal/events"
	"github.com/evalhq/rubric/internal/store"
	"github.com/evalhq/rubric/internal/weights"
)

type ConfigHandler struct {
	store  store.Store
	events events.Client
	logger *slog.Logger
}

func NewConfigHandler(s store.Store, ev events.Client, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{store: s, events: ev, logger: logger}
}

type ConfigurationRequest struct {
	Categories []weights.Category `json:"categories"`
}

type ConfigurationResponse struct {
	ProjectID  string             `json:"project_id"`
	Categories []weights.Category `json:"categories"`
}

func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	categories, err := h.store.LoadConfiguration(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if categories == nil {
		categories = []weights.Category{}
	}
	writeJSON(w, http.StatusOK, ConfigurationResponse{ProjectID: projectID, Categories: categories})
}

// Put validates and atomically replaces the project's configuration. Invalid
// drafts come back as 422 with the full validation report so the client can
// show every problem at once.
func (h *ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	var req ConfigurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := editor.NewSession(projectID, req.Categories, h.store, h.eventSink(), h.logger)
	persisted, err := session.Save(r.Context())
	if err != nil {
		var vErr *editor.ValidationFailedError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusUnprocessableEntity, vErr.Result)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	configSaves.Inc()
	writeJSON(w, http.StatusOK, ConfigurationResponse{ProjectID: projectID, Categories: persisted})
}

func (h *ConfigHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	if err := h.store.DeleteConfiguration(r.Context(), projectID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if h.events != nil {
		_ = h.events.Publish(events.SubjectConfigDeleted(projectID), events.ConfigDeletedEvent{ProjectID: projectID})
	}
	w.WriteHeader(http.StatusNoContent)
}

// Validate dry-runs the rules against a submitted draft without persisting
// anything. Always 200; the verdict is in the body.
func (h *ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ConfigurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, weights.Validate(req.Categories))
}

type TemplatesResponse struct {
	Default  []weights.Category            `json:"default"`
	Presets  map[string][]weights.Category `json:"presets"`
	Industry []weights.IndustryTemplate    `json:"industry"`
	Colors   []string                      `json:"colors"`
}

func (h *ConfigHandler) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TemplatesResponse{
		Default: weights.DefaultConfiguration(),
		Presets: map[string][]weights.Category{
			string(weights.ProjectTypeRFP): weights.PresetConfiguration(weights.ProjectTypeRFP),
			string(weights.ProjectTypeRFQ): weights.PresetConfiguration(weights.ProjectTypeRFQ),
			string(weights.ProjectTypeRFI): weights.PresetConfiguration(weights.ProjectTypeRFI),
		},
		Industry: weights.IndustryTemplates(),
		Colors:   weights.CategoryColors,
	})
}

func (h *ConfigHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if projects == nil {
		projects = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"projects": projects})
}

// eventSink adapts the NATS client to the editor's save notification. A nil
// client means events are disabled.
func (h *ConfigHandler) eventSink() editor.EventSink {
	if h.events == nil {
		return nil
	}
	return &configEventSink{events: h.events}
}

type configEventSink struct {
	events events.Client
}

func (s *configEventSink) PublishConfigSaved(_ context.Context, projectID string, categories []weights.Category) error {
	criteria := 0
	for _, c := range categories {
		criteria += len(c.Criteria)
	}
	return s.events.Publish(events.SubjectConfigSaved(projectID), events.ConfigSavedEvent{
		ProjectID:   projectID,
		Categories:  len(categories),
		Criteria:    criteria,
		TotalWeight: weights.TotalCategoryWeight(categories),
	})
}
