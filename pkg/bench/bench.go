// Package bench measures how well and how fast the punkt tokenizer splits a
// corpus that holds one sentence per line.
package bench

import (
	"context"
	"time"

	"github.com/baditaflorin/go_sentence_bench/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/tokenizer"
	corebench "github.com/baditaflorin/go_sentence_bench/internal/core/bench"
	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
	"github.com/baditaflorin/l"
)

// Result types.
type (
	AccuracyResult = domain.AccuracyResult
	SpeedResult    = domain.SpeedResult
)

// DefaultIterations is the number of timed speed runs.
const DefaultIterations = 10

// Option defines a functional option for the benchmarks.
type Option func(*config)

type config struct {
	Tokenizer  tokenizer.Config
	Iterations int
	WarmUp     int
	Observer   func(iteration int, elapsed time.Duration)
	Logger     ports.Logger
}

// WithTraining loads punkt training data from a JSON file instead of the bundled English model.
func WithTraining(path string) Option {
	return func(cfg *config) {
		cfg.Tokenizer.Training = path
	}
}

// WithAbbreviations adds abbreviation types to the benchmarked model.
func WithAbbreviations(abbrevs ...string) Option {
	return func(cfg *config) {
		cfg.Tokenizer = cfg.Tokenizer.WithAbbreviations(abbrevs...)
	}
}

// WithIterations sets the number of timed speed runs.
func WithIterations(n int) Option {
	return func(cfg *config) {
		cfg.Iterations = n
	}
}

// WithWarmUp sets the number of untimed runs before the speed benchmark.
func WithWarmUp(n int) Option {
	return func(cfg *config) {
		cfg.WarmUp = n
	}
}

// WithObserver is called after every timed speed run.
func WithObserver(fn func(iteration int, elapsed time.Duration)) Option {
	return func(cfg *config) {
		cfg.Observer = fn
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		Tokenizer:  tokenizer.DefaultConfig(),
		Iterations: DefaultIterations,
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
	return cfg, nil
}

// Accuracy compares the number of sentences found in text with its number of lines.
func Accuracy(ctx context.Context, text string, opts ...Option) (AccuracyResult, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return AccuracyResult{}, err
	}

	tok, err := tokenizer.New(cfg.Tokenizer)
	if err != nil {
		return AccuracyResult{}, err
	}
	return corebench.NewAccuracyCalculator(cfg.Logger, tok).Compute(ctx, text)
}

// Speed times loading the model and tokenizing text, once per iteration.
func Speed(ctx context.Context, text string, opts ...Option) (SpeedResult, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return SpeedResult{}, err
	}

	b, err := corebench.NewSpeedBenchmark(corebench.SpeedConfig{
		Iterations:       cfg.Iterations,
		WarmUpIterations: cfg.WarmUp,
	}, cfg.Logger, tokenizer.Factory{Config: cfg.Tokenizer})
	if err != nil {
		return SpeedResult{}, domain.ArgumentError("%v", err)
	}
	if cfg.Observer != nil {
		b.WithObserver(cfg.Observer)
	}
	return b.Run(ctx, text)
}

// ExpectedSentences returns the number of reference sentences in a line-per-sentence text.
func ExpectedSentences(text string) int {
	return corebench.ExpectedSentences(text)
}
