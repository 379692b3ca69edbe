package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup, ignored when SampleText is set
	SampleTextSize int
	// SampleText replaces the generated sample when non-empty
	SampleText string
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     100,
		SampleTextSize: 4096,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	tokenizers  []ports.SentenceTokenizer
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// Stats reports how much work a warmup run did.
type Stats struct {
	NormalizerRuns int
	TokenizerRuns  int
	Duration       time.Duration
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterTokenizer adds a tokenizer to be warmed up
func (wm *Manager) RegisterTokenizer(tok ports.SentenceTokenizer) {
	wm.tokenizers = append(wm.tokenizers, tok)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) Stats {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.tokenizers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	var warmupCtx context.Context
	var cancel context.CancelFunc
	if wm.config.Duration > 0 {
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	} else {
		warmupCtx = ctx
	}

	sampleText := wm.config.SampleText
	if sampleText == "" {
		sampleText = GenerateSampleText(wm.config.SampleTextSize)
	}

	var stats Stats
	stats.NormalizerRuns = wm.run(warmupCtx, len(wm.normalizers), func() {
		for _, normalizer := range wm.normalizers {
			_ = normalizer.Normalize(sampleText)
		}
	})
	stats.TokenizerRuns = wm.run(warmupCtx, len(wm.tokenizers), func() {
		for _, tok := range wm.tokenizers {
			_ = tok.Tokenize(sampleText)
		}
	})

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	stats.Duration = time.Since(startTime)
	wm.logger.Info("System warmup completed",
		"normalizer_runs", stats.NormalizerRuns,
		"tokenizer_runs", stats.TokenizerRuns,
		"duration", stats.Duration,
	)
	return stats
}

// run executes fn Iterations times on each of Concurrency goroutines and returns
// how many passes completed before ctx ended.
func (wm *Manager) run(ctx context.Context, components int, fn func()) int {
	if components == 0 {
		return 0
	}

	var mu sync.Mutex
	runs := 0

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			done := 0
		loop:
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					break loop
				default:
				}
				fn()
				done++
			}

			mu.Lock()
			runs += done
			mu.Unlock()
		}()
	}

	wg.Wait()
	return runs
}

// GenerateSampleText creates sample prose of roughly the specified size,
// with sentence-final punctuation and abbreviations for tokenizers to chew on.
func GenerateSampleText(size int) string {
	sentences := []string{
		"The quick brown fox jumps over the lazy dog.",
		"Mr. Smith went to Washington on Jan. 5th, didn't he?",
		"It was a bright cold day in April, and the clocks were striking thirteen!",
		"The U.S. economy grew by 2.5 percent in the third quarter.",
		"Dr. Watson, e.g. the narrator, kept notes etc. for later.",
	}

	var sb strings.Builder
	sb.Grow(size)
	for i := 0; sb.Len() < size; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(sentences[i%len(sentences)])
	}

	result := sb.String()
	if len(result) > size {
		return result[:size]
	}
	return result
}
