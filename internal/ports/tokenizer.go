package ports

// SentenceTokenizer splits text into an ordered list of sentences.
type SentenceTokenizer interface {
	Tokenize(text string) []string
}

// TokenizerFactory builds a fresh tokenizer, loading its model from scratch.
type TokenizerFactory interface {
	NewTokenizer() (SentenceTokenizer, error)
}
