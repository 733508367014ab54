package model

// AnalysisOptions selects which layers the text analyzer should produce.
type AnalysisOptions struct {
	IncludeMorphology   bool
	IncludeDependencies bool
}

// Morphology is the per-word morphological breakdown for Latin. Fields are
// empty when the category does not apply to the word's part of speech.
type Morphology struct {
	Case   string
	Number string
	Gender string
	Tense  string
	Voice  string
	Mood   string
	Person string
	Degree string
}

// Dependency links a word to its syntactic governor. Governor is -1 for
// the sentence root.
type Dependency struct {
	Relation string
	Governor int
}

// WordAnalysis is one analyzed token in reading order.
type WordAnalysis struct {
	Form       string
	Lemma      string
	POS        string
	Morphology *Morphology
	Dependency *Dependency
	Index      int
}

// TextAnalysis is the analyzer's full output for one text.
type TextAnalysis struct {
	Words   []WordAnalysis
	RawText string
}
