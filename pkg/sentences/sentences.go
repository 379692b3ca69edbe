// Package sentences splits text into sentences with a pre-trained punkt model
// and writes them one per delimiter.
package sentences

import (
	"context"
	"io"

	"github.com/baditaflorin/go_sentence_bench/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/stream"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
	"github.com/baditaflorin/l"
)

// Delimiters understood by Write.
const (
	DefaultDelimiter = stream.DefaultDelimiter
	SentenceBreak    = stream.SentenceBreak
)

// EnglishTraining selects the English model bundled with the tokenizer.
const EnglishTraining = tokenizer.EnglishTraining

// Tokenizer splits text into sentences.
type Tokenizer struct {
	punkt  *tokenizer.Punkt
	writer *stream.SentenceWriter
	logger ports.Logger
}

// Option defines a functional option for configuring a Tokenizer.
type Option func(*config)

type config struct {
	Tokenizer tokenizer.Config
	Delimiter string
	Logger    ports.Logger
}

// WithTraining loads punkt training data from a JSON file instead of the bundled English model.
func WithTraining(path string) Option {
	return func(cfg *config) {
		cfg.Tokenizer.Training = path
	}
}

// WithLanguage selects the word tokenizer. Only "english" has special handling.
func WithLanguage(lang string) Option {
	return func(cfg *config) {
		cfg.Tokenizer.Language = lang
	}
}

// WithAbbreviations adds abbreviation types to this tokenizer's private model.
func WithAbbreviations(abbrevs ...string) Option {
	return func(cfg *config) {
		cfg.Tokenizer = cfg.Tokenizer.WithAbbreviations(abbrevs...)
	}
}

// WithDelimiter sets the string written after every sentence.
func WithDelimiter(delim string) Option {
	return func(cfg *config) {
		cfg.Delimiter = delim
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// New loads a tokenizer model.
func New(opts ...Option) (*Tokenizer, error) {
	cfg := &config{
		Tokenizer: tokenizer.DefaultConfig(),
		Delimiter: DefaultDelimiter,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	punkt, err := tokenizer.New(cfg.Tokenizer)
	if err != nil {
		cfg.Logger.Error("Failed to load tokenizer", "training", cfg.Tokenizer.Training, "error", err)
		return nil, err
	}

	return &Tokenizer{
		punkt:  punkt,
		writer: stream.NewSentenceWriter(cfg.Logger, punkt).WithDelimiter(cfg.Delimiter),
		logger: cfg.Logger,
	}, nil
}

// Tokenize returns the sentences of text in order.
func (t *Tokenizer) Tokenize(text string) []string {
	return t.punkt.Tokenize(text)
}

// Write tokenizes text and writes each sentence, whitespace collapsed, followed by the delimiter.
// It returns the number of sentences written.
func (t *Tokenizer) Write(ctx context.Context, text string, w io.Writer) (int, error) {
	res, err := t.writer.WriteText(ctx, text, w)
	return res.Sentences, err
}

// IsAbbreviation reports whether the loaded model treats typ as an abbreviation.
func (t *Tokenizer) IsAbbreviation(typ string) bool {
	return t.punkt.IsAbbreviation(typ)
}
