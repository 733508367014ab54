package api

import (
	"time"

	"lectio-studio/internal/domain/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

type generatorConfigDTO struct {
	Level            string   `json:"level,omitempty"`
	ItemCount        int      `json:"itemCount,omitempty"`
	ExerciseTypes    []string `json:"exerciseTypes,omitempty"`
	DialogComplexity string   `json:"dialogComplexity,omitempty"`
}

// startGenerationRequest mirrors the pipeline wire shape: one key per
// generator, null meaning disabled.
type startGenerationRequest struct {
	Generators struct {
		Vocabulary *generatorConfigDTO `json:"vocabulary"`
		Grammar    *generatorConfigDTO `json:"grammar"`
		Exercises  *generatorConfigDTO `json:"exercises"`
		Dialogs    *generatorConfigDTO `json:"dialogs"`
	} `json:"generators"`
}

func (r *startGenerationRequest) toModel(readingID string) *model.GenerationRequest {
	return &model.GenerationRequest{
		ReadingID:  readingID,
		Vocabulary: r.Generators.Vocabulary.toModel(),
		Grammar:    r.Generators.Grammar.toModel(),
		Exercises:  r.Generators.Exercises.toModel(),
		Dialogs:    r.Generators.Dialogs.toModel(),
	}
}

func (c *generatorConfigDTO) toModel() *model.GeneratorConfig {
	if c == nil {
		return nil
	}
	return &model.GeneratorConfig{
		Level:            c.Level,
		ItemCount:        c.ItemCount,
		ExerciseTypes:    c.ExerciseTypes,
		DialogComplexity: c.DialogComplexity,
	}
}

type generatorRowView struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Status     string `json:"status"`
	Count      *int   `json:"count,omitempty"`
	DurationMs *int64 `json:"durationMs,omitempty"`
	Error      string `json:"error,omitempty"`
}

type sessionView struct {
	SessionID      string             `json:"sessionId"`
	ReadingID      string             `json:"readingId"`
	JobID          string             `json:"jobId,omitempty"`
	State          string             `json:"state"`
	JobStatus      string             `json:"jobStatus,omitempty"`
	Dismissed      bool               `json:"dismissed"`
	RefreshPending bool               `json:"refreshPending"`
	Succeeded      bool               `json:"succeeded"`
	Generators     []generatorRowView `json:"generators"`
	StartedAt      time.Time          `json:"startedAt"`
	SettledAt      *time.Time         `json:"settledAt,omitempty"`
}

func toSessionView(s *model.SessionSnapshot) sessionView {
	v := sessionView{
		SessionID:      s.SessionID,
		ReadingID:      s.ReadingID,
		JobID:          s.JobID,
		State:          string(s.State),
		JobStatus:      string(s.JobStatus),
		Dismissed:      s.Dismissed,
		RefreshPending: s.RefreshPending,
		Succeeded:      s.Succeeded(),
		Generators:     make([]generatorRowView, 0, len(s.Generators)),
		StartedAt:      s.StartedAt,
	}
	if !s.SettledAt.IsZero() {
		settled := s.SettledAt
		v.SettledAt = &settled
	}
	for _, g := range s.Generators {
		row := generatorRowView{
			Name:   string(g.Kind),
			Label:  g.Kind.Label(),
			Status: string(g.State),
			Error:  g.Error,
		}
		if g.State == model.GeneratorStateCompleted || g.Count > 0 {
			count := g.Count
			row.Count = &count
		}
		if g.Duration > 0 {
			ms := g.Duration.Milliseconds()
			row.DurationMs = &ms
		}
		v.Generators = append(v.Generators, row)
	}
	return v
}

type analyzeRequest struct {
	Text                string `json:"text"`
	IncludeMorphology   bool   `json:"include_morphology"`
	IncludeDependencies bool   `json:"include_dependencies"`
}

type morphologyView struct {
	Case   string `json:"case,omitempty"`
	Number string `json:"number,omitempty"`
	Gender string `json:"gender,omitempty"`
	Tense  string `json:"tense,omitempty"`
	Voice  string `json:"voice,omitempty"`
	Mood   string `json:"mood,omitempty"`
	Person string `json:"person,omitempty"`
	Degree string `json:"degree,omitempty"`
}

type dependencyView struct {
	Relation string `json:"relation"`
	Governor int    `json:"governor"`
}

type wordAnalysisView struct {
	Form       string          `json:"form"`
	Lemma      string          `json:"lemma,omitempty"`
	POS        string          `json:"pos,omitempty"`
	Morphology *morphologyView `json:"morphology,omitempty"`
	Dependency *dependencyView `json:"dependency,omitempty"`
	Index      int             `json:"index"`
}

type analyzeResponse struct {
	Words   []wordAnalysisView `json:"words"`
	RawText string             `json:"raw_text"`
}

func toAnalyzeResponse(a *model.TextAnalysis) analyzeResponse {
	out := analyzeResponse{
		RawText: a.RawText,
		Words:   make([]wordAnalysisView, 0, len(a.Words)),
	}
	for _, w := range a.Words {
		view := wordAnalysisView{
			Form:  w.Form,
			Lemma: w.Lemma,
			POS:   w.POS,
			Index: w.Index,
		}
		if w.Morphology != nil {
			view.Morphology = &morphologyView{
				Case:   w.Morphology.Case,
				Number: w.Morphology.Number,
				Gender: w.Morphology.Gender,
				Tense:  w.Morphology.Tense,
				Voice:  w.Morphology.Voice,
				Mood:   w.Morphology.Mood,
				Person: w.Morphology.Person,
				Degree: w.Morphology.Degree,
			}
		}
		if w.Dependency != nil {
			view.Dependency = &dependencyView{
				Relation: w.Dependency.Relation,
				Governor: w.Dependency.Governor,
			}
		}
		out.Words = append(out.Words, view)
	}
	return out
}

type healthView struct {
	Status   string `json:"status"`
	Analyzer string `json:"analyzer"`
}
