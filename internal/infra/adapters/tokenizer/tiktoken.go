// Package tokenizer estimates the token cost of a reading so oversized
// texts are refused before a generation job is ever submitted.
package tokenizer

import (
	"fmt"

	"lectio-studio/internal/domain/ports/adapter"

	"github.com/pkoukk/tiktoken-go"
)

var _ adapter.TokenCounter = (*TiktokenCounter)(nil)

// TiktokenCounter counts tokens with the encoding of the model the pipeline
// generates with. The encoding is resolved once at construction.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: resolve encoding for %q: %w", model, err)
	}
	return &TiktokenCounter{enc: enc}, nil
}

func (c *TiktokenCounter) CountTokens(text string) (int, error) {
	return len(c.enc.Encode(text, nil, nil)), nil
}
