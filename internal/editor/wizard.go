package editor

import (
	"fmt"

	"github.com/evalhq/rubric/internal/weights"
)

// Step is a stage of the guided setup flow.
type Step int

const (
	StepTemplate Step = iota
	StepCategories
	StepCriteria
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepTemplate:
		return "template"
	case StepCategories:
		return "categories"
	case StepCriteria:
		return "criteria"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// TemplateKind selects where a draft starts from.
type TemplateKind string

const (
	TemplateBlank    TemplateKind = "blank"
	TemplateDefault  TemplateKind = "default"
	TemplatePreset   TemplateKind = "preset"
	TemplateIndustry TemplateKind = "industry"
)

// Step returns the wizard's current stage.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// CanProceed reports whether the current step's gate is satisfied. The gates
// tighten as the wizard advances: template chosen, then category weights
// summing to 100, then full validation for the last two steps.
func (s *Session) CanProceed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canProceedLocked()
}

func (s *Session) canProceedLocked() bool {
	switch s.step {
	case StepTemplate:
		return s.template
	case StepCategories:
		if len(s.draft) == 0 {
			return false
		}
		total := weights.TotalCategoryWeight(s.draft)
		return total > 100-weights.CategorySumTolerance && total < 100+weights.CategorySumTolerance
	case StepCriteria, StepReview:
		return weights.Validate(s.draft).Valid
	default:
		return false
	}
}

// Next advances the wizard one step. It refuses to skip a failed gate.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return ErrSaveInFlight
	}
	if s.step >= StepReview {
		return fmt.Errorf("already at the final step")
	}
	if !s.canProceedLocked() {
		return fmt.Errorf("step %s is not complete", s.step)
	}
	s.step++
	return nil
}

// Back rewinds the wizard one step. Going back never loses draft edits.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step <= StepTemplate {
		return fmt.Errorf("already at the first step")
	}
	s.step--
	return nil
}

// ChooseTemplate replaces the draft with a starting rubric. ref names the
// project type for preset templates and the template ID for industry
// templates; it is ignored otherwise. Blank starts from nothing, for
// evaluations built entirely by hand.
func (s *Session) ChooseTemplate(kind TemplateKind, ref string) error {
	return s.edit(func() error {
		switch kind {
		case TemplateBlank:
			s.draft = nil
		case TemplateDefault:
			s.draft = weights.DefaultConfiguration()
		case TemplatePreset:
			s.draft = weights.PresetConfiguration(weights.ProjectType(ref))
		case TemplateIndustry:
			found := false
			for _, tmpl := range weights.IndustryTemplates() {
				if tmpl.ID == ref {
					s.draft = tmpl.Categories
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("unknown industry template %q", ref)
			}
		default:
			return fmt.Errorf("unknown template kind %q", kind)
		}
		s.template = true
		return nil
	})
}
