package model

import (
	"time"

	"lectio-studio/internal/domain"
)

// Reading is a source text that lesson content is generated against. The
// studio owns its lifecycle elsewhere; this service reads it and stamps
// generation metadata.
type Reading struct {
	ID          string
	Title       string
	Language    string
	Level       string
	SourceText  string
	GeneratedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewReading validates and constructs a reading.
func NewReading(id, title, language, level, sourceText string) (*Reading, error) {
	if id == "" || title == "" || sourceText == "" {
		return nil, domain.ErrInvalidArgument
	}
	if language == "" {
		language = "lat"
	}
	if level != "" && !cefrLevels[level] {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Reading{
		ID:         id,
		Title:      title,
		Language:   language,
		Level:      level,
		SourceText: sourceText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
