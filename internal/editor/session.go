// Package editor manages the uncommitted draft of a project's rubric
// configuration. A Session owns exactly one draft; nothing it does is
// visible to readers of the persisted configuration until Save commits the
// whole draft atomically.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/evalhq/rubric/internal/weights"
)

// ConfigStore persists a full configuration in one atomic replace.
type ConfigStore interface {
	ReplaceConfiguration(ctx context.Context, projectID string, categories []weights.Category) ([]weights.Category, error)
}

// EventSink receives the best-effort config-saved notification.
type EventSink interface {
	PublishConfigSaved(ctx context.Context, projectID string, categories []weights.Category) error
}

// ErrSaveInFlight is returned by edits and Save while a previous Save has
// not finished. Reads remain available.
var ErrSaveInFlight = errors.New("configuration save already in progress")

// ValidationFailedError carries the full validation report of a rejected
// save.
type ValidationFailedError struct {
	Result weights.ValidationResult
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("configuration invalid: %d validation errors", len(e.Result.Errors))
}

// Session is the single owner of one project's draft configuration. All
// methods are safe for concurrent use.
type Session struct {
	projectID string
	store     ConfigStore
	events    EventSink
	logger    *slog.Logger

	mu       sync.Mutex
	baseline []weights.Category
	draft    []weights.Category
	dirty    bool
	saving   bool
	step     Step
	template bool
}

// NewSession starts an editing session seeded from the persisted
// configuration. An existing configuration counts as a chosen template; an
// empty one starts the wizard from the template step.
func NewSession(projectID string, current []weights.Category, store ConfigStore, events EventSink, logger *slog.Logger) *Session {
	s := &Session{
		projectID: projectID,
		store:     store,
		events:    events,
		logger:    logger,
		baseline:  weights.Clone(current),
		draft:     weights.Clone(current),
		step:      StepTemplate,
	}
	if len(current) > 0 {
		s.template = true
	}
	return s
}

// Draft returns a deep copy of the working configuration.
func (s *Session) Draft() []weights.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return weights.Clone(s.draft)
}

// Dirty reports whether the draft has diverged from the last saved state.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Validate runs full validation against the current draft.
func (s *Session) Validate() weights.ValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return weights.Validate(s.draft)
}

// Cancel discards the draft and rewinds the session to the saved baseline.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return ErrSaveInFlight
	}
	s.draft = weights.Clone(s.baseline)
	s.dirty = false
	s.step = StepTemplate
	s.template = len(s.baseline) > 0
	return nil
}

// Save validates the draft and atomically replaces the persisted
// configuration. On success the draft becomes the new baseline (with the
// IDs the store assigned); on failure the draft is kept so the user's work
// survives. The saved event is best-effort and never fails the save.
func (s *Session) Save(ctx context.Context) ([]weights.Category, error) {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	result := weights.Validate(s.draft)
	if !result.Valid {
		s.mu.Unlock()
		return nil, &ValidationFailedError{Result: result}
	}
	outgoing := stripBookkeeping(weights.Clone(s.draft))
	s.saving = true
	s.mu.Unlock()

	persisted, err := s.store.ReplaceConfiguration(ctx, s.projectID, outgoing)

	s.mu.Lock()
	s.saving = false
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("replace configuration: %w", err)
	}
	s.baseline = weights.Clone(persisted)
	s.draft = weights.Clone(persisted)
	s.dirty = false
	s.mu.Unlock()

	if s.events != nil {
		if err := s.events.PublishConfigSaved(ctx, s.projectID, persisted); err != nil {
			s.logger.Warn("config saved event not published", "project_id", s.projectID, "error", err)
		}
	}
	return persisted, nil
}

// stripBookkeeping drops stale identifiers and renumbers sort orders so the
// store assigns a fresh consistent tree.
func stripBookkeeping(categories []weights.Category) []weights.Category {
	for i := range categories {
		categories[i].ID = nil
		categories[i].SortOrder = i + 1
		for j := range categories[i].Criteria {
			categories[i].Criteria[j].ID = nil
			categories[i].Criteria[j].CategoryID = nil
			categories[i].Criteria[j].SortOrder = j + 1
		}
	}
	return categories
}

// edit wraps a draft mutation with the in-flight-save guard and dirty
// tracking.
func (s *Session) edit(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return ErrSaveInFlight
	}
	if err := fn(); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

func (s *Session) findCategory(slug string) (*weights.Category, error) {
	for i := range s.draft {
		if s.draft[i].Name == slug {
			return &s.draft[i], nil
		}
	}
	return nil, fmt.Errorf("category %q not found", slug)
}

func (s *Session) findCriterion(categorySlug, criterionSlug string) (*weights.Category, *weights.Criterion, error) {
	cat, err := s.findCategory(categorySlug)
	if err != nil {
		return nil, nil, err
	}
	for i := range cat.Criteria {
		if cat.Criteria[i].Name == criterionSlug {
			return cat, &cat.Criteria[i], nil
		}
	}
	return nil, nil, fmt.Errorf("criterion %q not found in category %q", criterionSlug, categorySlug)
}
