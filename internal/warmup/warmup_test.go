package warmup

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/baditaflorin/go_sentence_bench/internal/adapters/logger"
)

type countingTokenizer struct {
	calls atomic.Int64
}

func (c *countingTokenizer) Tokenize(text string) []string {
	c.calls.Add(1)
	return strings.SplitAfter(text, ".")
}

type countingNormalizer struct {
	calls atomic.Int64
}

func (c *countingNormalizer) Normalize(text string) string {
	c.calls.Add(1)
	return text
}

func TestWarmUpRunsEveryComponent(t *testing.T) {
	cfg := WarmupConfig{Concurrency: 3, Iterations: 4, SampleTextSize: 200}
	mgr := NewManager(logger.NewDiscardLogger(), cfg)

	tok := &countingTokenizer{}
	norm := &countingNormalizer{}
	mgr.RegisterTokenizer(tok)
	mgr.RegisterNormalizer(norm)

	stats := mgr.WarmUp(context.Background())

	if got := tok.calls.Load(); got != 12 {
		t.Errorf("tokenizer calls = %d, want 12", got)
	}
	if got := norm.calls.Load(); got != 12 {
		t.Errorf("normalizer calls = %d, want 12", got)
	}
	if stats.TokenizerRuns != 12 || stats.NormalizerRuns != 12 {
		t.Errorf("stats = %+v, want 12 runs each", stats)
	}
}

func TestWarmUpStopsOnCancelledContext(t *testing.T) {
	mgr := NewManager(logger.NewDiscardLogger(), WarmupConfig{Concurrency: 2, Iterations: 1000})
	tok := &countingTokenizer{}
	mgr.RegisterTokenizer(tok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats := mgr.WarmUp(ctx)

	if stats.TokenizerRuns != 0 || tok.calls.Load() != 0 {
		t.Errorf("expected no runs after cancellation, got %d", stats.TokenizerRuns)
	}
}

func TestGenerateSampleText(t *testing.T) {
	for _, size := range []int{0, 10, 1000} {
		got := GenerateSampleText(size)
		if len(got) != size {
			t.Errorf("GenerateSampleText(%d) length = %d", size, len(got))
		}
	}
	if !strings.Contains(GenerateSampleText(500), "Mr. Smith") {
		t.Error("sample text should contain abbreviations")
	}
}
