package editor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/evalhq/rubric/internal/weights"
)

type fakeStore struct {
	mu      sync.Mutex
	saves   int
	last    []weights.Category
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeStore) ReplaceConfiguration(_ context.Context, _ string, categories []weights.Category) ([]weights.Category, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	persisted := weights.Clone(categories)
	for i := range persisted {
		id := uuid.New()
		persisted[i].ID = &id
		for j := range persisted[i].Criteria {
			critID := uuid.New()
			persisted[i].Criteria[j].ID = &critID
			persisted[i].Criteria[j].CategoryID = &id
		}
	}
	f.saves++
	f.last = persisted
	return persisted, nil
}

type fakeEvents struct {
	mu        sync.Mutex
	published int
	err       error
}

func (f *fakeEvents) PublishConfigSaved(context.Context, string, []weights.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published++
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(current []weights.Category) (*Session, *fakeStore, *fakeEvents) {
	store := &fakeStore{}
	events := &fakeEvents{}
	return NewSession("proj-1", current, store, events, testLogger()), store, events
}

func TestNewSessionFromExistingConfiguration(t *testing.T) {
	s, _, _ := newTestSession(weights.DefaultConfiguration())
	if s.Dirty() {
		t.Error("fresh session must not be dirty")
	}
	if !s.CanProceed() {
		t.Error("existing configuration counts as a chosen template")
	}
}

func TestWizardFlow(t *testing.T) {
	s, _, _ := newTestSession(nil)

	if s.CanProceed() {
		t.Fatal("template step must gate until a template is chosen")
	}
	if err := s.Next(); err == nil {
		t.Fatal("Next must refuse a failed gate")
	}

	if err := s.ChooseTemplate(TemplateDefault, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("template -> categories: %v", err)
	}
	if s.Step() != StepCategories {
		t.Fatalf("step = %s", s.Step())
	}
	if err := s.Next(); err != nil {
		t.Fatalf("categories -> criteria: %v", err)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("criteria -> review: %v", err)
	}
	if err := s.Next(); err == nil {
		t.Fatal("Next past review must fail")
	}
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepCriteria {
		t.Errorf("step after Back = %s", s.Step())
	}
}

func TestWizardCategoryGateRequiresFullWeight(t *testing.T) {
	s, _, _ := newTestSession(nil)
	if err := s.ChooseTemplate(TemplateBlank, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if s.CanProceed() {
		t.Fatal("empty draft must not pass the categories gate")
	}

	if err := s.AddCategory("Technical"); err != nil {
		t.Fatal(err)
	}
	if s.CanProceed() {
		t.Fatal("zero total weight must not pass the categories gate")
	}
	w := 100.0
	if err := s.UpdateCategory("technical", CategoryUpdate{Weight: &w}); err != nil {
		t.Fatal(err)
	}
	if !s.CanProceed() {
		t.Error("100% total must pass the categories gate")
	}
}

func TestChooseTemplateVariants(t *testing.T) {
	tests := []struct {
		name string
		kind TemplateKind
		ref  string
		want int // categories
	}{
		{"default", TemplateDefault, "", 5},
		{"rfq preset", TemplatePreset, "RFQ", 5},
		{"rfi preset", TemplatePreset, "RFI", 2},
		{"industry", TemplateIndustry, "telecom", 4},
		{"blank", TemplateBlank, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(nil)
			if err := s.ChooseTemplate(tt.kind, tt.ref); err != nil {
				t.Fatal(err)
			}
			if got := len(s.Draft()); got != tt.want {
				t.Errorf("categories = %d, want %d", got, tt.want)
			}
			if !s.Dirty() {
				t.Error("choosing a template must mark the draft dirty")
			}
		})
	}

	s, _, _ := newTestSession(nil)
	if err := s.ChooseTemplate(TemplateIndustry, "no_such_sector"); err == nil {
		t.Error("unknown industry template must be rejected")
	}
}

func TestAddCategoryDefaults(t *testing.T) {
	s, _, _ := newTestSession(nil)
	if err := s.ChooseTemplate(TemplateBlank, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCategory("HSE & Compliance"); err != nil {
		t.Fatal(err)
	}
	draft := s.Draft()
	cat := draft[0]
	if cat.Name != "hse_compliance" {
		t.Errorf("slug = %q", cat.Name)
	}
	if cat.Weight != 0 {
		t.Errorf("new category weight = %v, want 0", cat.Weight)
	}
	if cat.Color != weights.CategoryColors[0] {
		t.Errorf("color = %q", cat.Color)
	}
	if err := s.AddCategory("Economic"); err != nil {
		t.Fatal(err)
	}
	if got := s.Draft()[1].Color; got != weights.CategoryColors[1] {
		t.Errorf("second category color = %q", got)
	}
}

func TestAddCriterionTakesUnallocatedRemainder(t *testing.T) {
	s, _, _ := newTestSession([]weights.Category{{
		Name: "technical", DisplayName: "Technical", Weight: 40,
		Criteria: []weights.Criterion{{Name: "scope", DisplayName: "Scope", Weight: 60}},
	}})
	if err := s.AddCriterion("technical", "Deliverables Quality"); err != nil {
		t.Fatal(err)
	}
	crit := s.Draft()[0].Criteria[1]
	if crit.Name != "deliverables_quality" {
		t.Errorf("slug = %q", crit.Name)
	}
	if crit.Weight != 40 {
		t.Errorf("weight = %v, want the 40%% remainder", crit.Weight)
	}

	if err := s.AddCriterion("technical", "Extra"); err != nil {
		t.Fatal(err)
	}
	if got := s.Draft()[0].Criteria[2].Weight; got != 0 {
		t.Errorf("fully allocated category: new criterion weight = %v, want 0", got)
	}
}

func TestUpdateCategoryReslugsOnRename(t *testing.T) {
	s, _, _ := newTestSession([]weights.Category{{
		Name: "technical", DisplayName: "Technical", Weight: 100,
		Criteria: []weights.Criterion{{Name: "scope", DisplayName: "Scope", Weight: 100}},
	}})

	name := "Technical & Quality"
	if err := s.UpdateCategory("technical", CategoryUpdate{DisplayName: &name}); err != nil {
		t.Fatal(err)
	}
	if got := s.Draft()[0].Name; got != "technical_quality" {
		t.Errorf("slug = %q, want technical_quality", got)
	}

	// An explicit machine name wins over the derived one.
	display, explicit := "Quality Again", "technical"
	err := s.UpdateCategory("technical_quality", CategoryUpdate{DisplayName: &display, Name: &explicit})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Draft()[0].Name; got != "technical" {
		t.Errorf("slug = %q, want technical", got)
	}
}

func TestDeleteDoesNotRenormalize(t *testing.T) {
	s, _, _ := newTestSession(weights.DefaultConfiguration())
	if err := s.DeleteCategory("economic"); err != nil {
		t.Fatal(err)
	}
	total := weights.TotalCategoryWeight(s.Draft())
	if total != 70 {
		t.Errorf("total after delete = %v, want 70 (no renormalization)", total)
	}
	if s.Validate().Valid {
		t.Error("the 30%% gap must surface through validation")
	}
}

func TestDistributeWeights(t *testing.T) {
	s, _, _ := newTestSession(nil)
	if err := s.ChooseTemplate(TemplateBlank, ""); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"One", "Two", "Three"} {
		if err := s.AddCategory(name); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.DistributeCategoryWeights(); err != nil {
		t.Fatal(err)
	}
	draft := s.Draft()
	if draft[0].Weight != 34 || draft[1].Weight != 33 || draft[2].Weight != 33 {
		t.Errorf("weights = %v %v %v, want 34 33 33", draft[0].Weight, draft[1].Weight, draft[2].Weight)
	}
}

func TestReorderCategories(t *testing.T) {
	s, _, _ := newTestSession(weights.DefaultConfiguration())
	if err := s.ReorderCategories([]string{"economic", "technical", "esg_sustainability", "hse_compliance", "execution"}); err != nil {
		t.Fatal(err)
	}
	draft := s.Draft()
	if draft[0].Name != "economic" || draft[0].SortOrder != 1 {
		t.Errorf("first = %s (sort %d)", draft[0].Name, draft[0].SortOrder)
	}
	if draft[1].Name != "technical" || draft[1].SortOrder != 2 {
		t.Errorf("second = %s (sort %d)", draft[1].Name, draft[1].SortOrder)
	}

	if err := s.ReorderCategories([]string{"economic"}); err == nil {
		t.Error("partial reorder must be rejected")
	}
}

func TestCriterionAbsoluteWeightRoundTrip(t *testing.T) {
	s, _, _ := newTestSession([]weights.Category{{
		Name: "technical", DisplayName: "Technical", Weight: 40,
		Criteria: []weights.Criterion{{Name: "scope", DisplayName: "Scope", Weight: 60}},
	}})

	abs, err := s.CriterionAbsoluteWeight("technical", "scope")
	if err != nil {
		t.Fatal(err)
	}
	if abs != 24 {
		t.Errorf("absolute = %v, want 24", abs)
	}

	if err := s.SetCriterionAbsoluteWeight("technical", "scope", 30); err != nil {
		t.Fatal(err)
	}
	if got := s.Draft()[0].Criteria[0].Weight; got != 75 {
		t.Errorf("relative after set = %v, want 75", got)
	}
}

func TestSetAbsoluteWeightOnZeroWeightCategory(t *testing.T) {
	s, _, _ := newTestSession([]weights.Category{{
		Name: "extras", DisplayName: "Extras", Weight: 0,
		Criteria: []weights.Criterion{{Name: "x", DisplayName: "X", Weight: 100}},
	}})
	if err := s.SetCriterionAbsoluteWeight("extras", "x", 10); err == nil {
		t.Error("absolute edit on a zero-weight category must fail")
	}
}

func TestSaveRejectsInvalidDraft(t *testing.T) {
	s, store, _ := newTestSession(nil)
	if err := s.ChooseTemplate(TemplateBlank, ""); err != nil {
		t.Fatal(err)
	}
	_, err := s.Save(context.Background())
	var vErr *ValidationFailedError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationFailedError, got %v", err)
	}
	if store.saves != 0 {
		t.Error("invalid draft must never reach the store")
	}
}

func TestSaveCommitsAndSwapsBaseline(t *testing.T) {
	s, store, events := newTestSession(nil)
	if err := s.ChooseTemplate(TemplateDefault, ""); err != nil {
		t.Fatal(err)
	}
	persisted, err := s.Save(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if store.saves != 1 {
		t.Errorf("store saves = %d", store.saves)
	}
	if s.Dirty() {
		t.Error("saved session must be clean")
	}
	if persisted[0].ID == nil {
		t.Error("persisted tree must carry store-assigned IDs")
	}
	if events.published != 1 {
		t.Errorf("published = %d, want 1", events.published)
	}

	// Cancel after save rewinds to the saved state, not to empty.
	if err := s.DeleteCategory("technical"); err != nil {
		t.Fatal(err)
	}
	if err := s.Cancel(); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Draft()); got != 5 {
		t.Errorf("draft after cancel has %d categories, want 5", got)
	}
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	s, store, _ := newTestSession(nil)
	store.err = errors.New("connection reset")
	if err := s.ChooseTemplate(TemplateDefault, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(context.Background()); err == nil {
		t.Fatal("expected save error")
	}
	if !s.Dirty() {
		t.Error("failed save must keep the draft dirty")
	}
	if got := len(s.Draft()); got != 5 {
		t.Errorf("draft lost after failed save: %d categories", got)
	}

	store.err = nil
	if _, err := s.Save(context.Background()); err != nil {
		t.Errorf("retry after failure: %v", err)
	}
}

func TestEventFailureDoesNotFailSave(t *testing.T) {
	s, _, events := newTestSession(nil)
	events.err = errors.New("nats unavailable")
	if err := s.ChooseTemplate(TemplateDefault, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(context.Background()); err != nil {
		t.Errorf("save must succeed even when the event publish fails: %v", err)
	}
}

func TestEditsRejectedWhileSaveInFlight(t *testing.T) {
	store := &fakeStore{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSession("proj-1", nil, store, nil, testLogger())
	if err := s.ChooseTemplate(TemplateDefault, ""); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Save(context.Background())
		done <- err
	}()
	<-store.entered

	if err := s.AddCategory("Late Edit"); !errors.Is(err, ErrSaveInFlight) {
		t.Errorf("edit during save: %v, want ErrSaveInFlight", err)
	}
	if _, err := s.Save(context.Background()); !errors.Is(err, ErrSaveInFlight) {
		t.Errorf("second save during save: %v, want ErrSaveInFlight", err)
	}
	// Reads stay available while the save is outstanding.
	if got := len(s.Draft()); got != 5 {
		t.Errorf("read during save: %d categories", got)
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.AddCategory("After Save"); err != nil {
		t.Errorf("edit after save finished: %v", err)
	}
}

func TestSaveStripsStaleIdentifiers(t *testing.T) {
	id := uuid.New()
	s, store, _ := newTestSession([]weights.Category{{
		ID: &id, Name: "technical", DisplayName: "Technical", Weight: 100, SortOrder: 7,
		Criteria: []weights.Criterion{{ID: &id, CategoryID: &id, Name: "scope", DisplayName: "Scope", Weight: 100, SortOrder: 9}},
	}})
	if _, err := s.Save(context.Background()); err != nil {
		t.Fatal(err)
	}
	saved := store.last
	if saved[0].SortOrder != 1 || saved[0].Criteria[0].SortOrder != 1 {
		t.Error("sort orders must be renumbered on save")
	}
}
