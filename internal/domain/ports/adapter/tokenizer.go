package adapter

// TokenCounter estimates how many tokens a text costs in the generation
// pipeline's tokenizer. Used to refuse oversized readings before submission.
type TokenCounter interface {
	CountTokens(text string) (int, error)
}
