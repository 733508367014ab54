package model

import (
	"fmt"

	"lectio-studio/internal/domain"
)

// GeneratorKind identifies one of the lesson-content generators offered by
// the generation pipeline.
type GeneratorKind string

const (
	GeneratorVocabulary GeneratorKind = "vocabulary"
	GeneratorGrammar    GeneratorKind = "grammar"
	GeneratorExercises  GeneratorKind = "exercises"
	GeneratorDialogs    GeneratorKind = "dialogs"

	// GeneratorSubmission is the synthetic row kind reported when the job
	// could not be submitted at all. It never appears in a request.
	GeneratorSubmission GeneratorKind = "generation"
)

// GeneratorKinds is the canonical presentation order of the real generators.
var GeneratorKinds = []GeneratorKind{
	GeneratorVocabulary,
	GeneratorGrammar,
	GeneratorExercises,
	GeneratorDialogs,
}

func (k GeneratorKind) Valid() bool {
	switch k {
	case GeneratorVocabulary, GeneratorGrammar, GeneratorExercises, GeneratorDialogs:
		return true
	}
	return false
}

// Label returns the display name used by the authoring UI.
func (k GeneratorKind) Label() string {
	switch k {
	case GeneratorVocabulary:
		return "Vocabulary"
	case GeneratorGrammar:
		return "Grammar"
	case GeneratorExercises:
		return "Exercises"
	case GeneratorDialogs:
		return "Dialogs"
	case GeneratorSubmission:
		return "Generation"
	}
	return string(k)
}

var cefrLevels = map[string]bool{
	"A1": true, "A2": true, "B1": true, "B2": true, "C1": true, "C2": true,
}

var exerciseTypes = map[string]bool{
	"multiple_choice": true,
	"fill_blank":      true,
	"translation":     true,
	"matching":        true,
}

var dialogComplexities = map[string]bool{
	"simple": true, "moderate": true, "complex": true,
}

// GeneratorConfig holds the per-generator parameters. Zero values defer to
// the pipeline's defaults; ExerciseTypes and DialogComplexity only apply to
// their respective kinds.
type GeneratorConfig struct {
	Level            string
	ItemCount        int
	ExerciseTypes    []string
	DialogComplexity string
}

func (c *GeneratorConfig) validate(kind GeneratorKind) error {
	if c.Level != "" && !cefrLevels[c.Level] {
		return fmt.Errorf("%s: unknown level %q: %w", kind, c.Level, domain.ErrInvalidArgument)
	}
	if c.ItemCount < 0 || c.ItemCount > 50 {
		return fmt.Errorf("%s: item count %d out of range: %w", kind, c.ItemCount, domain.ErrInvalidArgument)
	}
	if len(c.ExerciseTypes) > 0 {
		if kind != GeneratorExercises {
			return fmt.Errorf("%s: exercise types only apply to exercises: %w", kind, domain.ErrInvalidArgument)
		}
		for _, et := range c.ExerciseTypes {
			if !exerciseTypes[et] {
				return fmt.Errorf("%s: unknown exercise type %q: %w", kind, et, domain.ErrInvalidArgument)
			}
		}
	}
	if c.DialogComplexity != "" {
		if kind != GeneratorDialogs {
			return fmt.Errorf("%s: dialog complexity only applies to dialogs: %w", kind, domain.ErrInvalidArgument)
		}
		if !dialogComplexities[c.DialogComplexity] {
			return fmt.Errorf("%s: unknown dialog complexity %q: %w", kind, c.DialogComplexity, domain.ErrInvalidArgument)
		}
	}
	return nil
}

// GenerationRequest selects the generators to run against one reading.
// A nil config means that generator is disabled; there is no implicit
// defaulting of generators.
type GenerationRequest struct {
	ReadingID  string
	Vocabulary *GeneratorConfig
	Grammar    *GeneratorConfig
	Exercises  *GeneratorConfig
	Dialogs    *GeneratorConfig
}

// Config returns the configuration for kind, nil when disabled.
func (r *GenerationRequest) Config(kind GeneratorKind) *GeneratorConfig {
	switch kind {
	case GeneratorVocabulary:
		return r.Vocabulary
	case GeneratorGrammar:
		return r.Grammar
	case GeneratorExercises:
		return r.Exercises
	case GeneratorDialogs:
		return r.Dialogs
	}
	return nil
}

// EnabledKinds lists the enabled generators in canonical order.
func (r *GenerationRequest) EnabledKinds() []GeneratorKind {
	kinds := make([]GeneratorKind, 0, len(GeneratorKinds))
	for _, k := range GeneratorKinds {
		if r.Config(k) != nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Validate rejects requests with no generators enabled or with bad
// per-generator parameters.
func (r *GenerationRequest) Validate() error {
	if r.ReadingID == "" {
		return fmt.Errorf("reading id required: %w", domain.ErrInvalidArgument)
	}
	enabled := r.EnabledKinds()
	if len(enabled) == 0 {
		return domain.ErrNoGeneratorsEnabled
	}
	for _, k := range enabled {
		if err := r.Config(k).validate(k); err != nil {
			return err
		}
	}
	return nil
}
