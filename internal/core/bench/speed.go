package bench

import (
	"context"
	"errors"
	"time"

	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
	"github.com/baditaflorin/go_sentence_bench/internal/warmup"
)

// SpeedConfig holds configuration for the speed benchmark.
type SpeedConfig struct {
	// Iterations is the number of timed runs.
	Iterations int
	// WarmUpIterations are untimed runs on the benchmark text before timing starts.
	WarmUpIterations int
}

// DefaultSpeedConfig returns a default configuration.
func DefaultSpeedConfig() SpeedConfig {
	return SpeedConfig{Iterations: 10}
}

// Validate checks if the configuration is valid.
func (c SpeedConfig) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("iterations must be greater than 0")
	}
	if c.WarmUpIterations < 0 {
		return errors.New("warm-up iterations must not be negative")
	}
	return nil
}

// IterationObserver is told about every finished timed iteration.
type IterationObserver func(iteration int, elapsed time.Duration)

// SpeedBenchmark times model loading plus tokenization of a whole text.
type SpeedBenchmark struct {
	config   SpeedConfig
	logger   ports.Logger
	factory  ports.TokenizerFactory
	observer IterationObserver
}

// NewSpeedBenchmark creates a new speed benchmark.
func NewSpeedBenchmark(config SpeedConfig, logger ports.Logger, factory ports.TokenizerFactory) (*SpeedBenchmark, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, errors.New("tokenizer factory is required")
	}
	return &SpeedBenchmark{config: config, logger: logger, factory: factory}, nil
}

// WithObserver registers a callback invoked after every timed iteration.
func (b *SpeedBenchmark) WithObserver(obs IterationObserver) *SpeedBenchmark {
	b.observer = obs
	return b
}

// Run loads a fresh tokenizer and tokenizes text once per iteration.
func (b *SpeedBenchmark) Run(ctx context.Context, text string) (domain.SpeedResult, error) {
	if b.config.WarmUpIterations > 0 {
		tok, err := b.factory.NewTokenizer()
		if err != nil {
			return domain.SpeedResult{}, err
		}
		mgr := warmup.NewManager(b.logger, warmup.WarmupConfig{
			Concurrency: 1,
			Iterations:  b.config.WarmUpIterations,
			SampleText:  text,
		})
		mgr.RegisterTokenizer(tok)
		mgr.WarmUp(ctx)
	}

	result := domain.SpeedResult{Iterations: make([]time.Duration, 0, b.config.Iterations)}
	for i := 0; i < b.config.Iterations; i++ {
		select {
		case <-ctx.Done():
			b.logger.Warn("Speed benchmark cancelled by context", "error", ctx.Err(), "completed", i)
			return result, ctx.Err()
		default:
		}

		start := time.Now()
		tok, err := b.factory.NewTokenizer()
		if err != nil {
			b.logger.Error("Failed to load tokenizer", "error", err)
			return result, err
		}
		result.Sentences = len(tok.Tokenize(text))
		elapsed := time.Since(start)

		result.Iterations = append(result.Iterations, elapsed)
		result.Total += elapsed
		if b.observer != nil {
			b.observer(i, elapsed)
		}
	}

	b.logger.Info("Speed benchmark completed",
		"iterations", len(result.Iterations),
		"sentences", result.Sentences,
		"average", result.Average(),
	)
	return result, nil
}
