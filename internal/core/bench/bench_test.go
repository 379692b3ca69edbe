package bench

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_sentence_bench/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

// lineTokenizer treats every non-empty line as one sentence.
type lineTokenizer struct{}

func (lineTokenizer) Tokenize(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

type countingFactory struct {
	created atomic.Int64
	err     error
}

func (f *countingFactory) NewTokenizer() (ports.SentenceTokenizer, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created.Add(1)
	return lineTokenizer{}, nil
}

func TestExpectedSentences(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"", 1},
		{"One.", 1},
		{"One.\nTwo.", 2},
		{"One.\nTwo.\n", 3},
		{"\n\n", 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, ExpectedSentences(tc.text), "text %q", tc.text)
	}
}

func TestAccuracyCompute(t *testing.T) {
	calc := NewAccuracyCalculator(logger.NewDiscardLogger(), lineTokenizer{})

	res, err := calc.Compute(context.Background(), "One.\nTwo.\nThree.\n")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Actual)
	assert.Equal(t, 4, res.Expected)
	assert.InDelta(t, 75.0, res.Percent, 1e-9)

	res, err = calc.Compute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Actual)
	assert.Equal(t, 1, res.Expected)
	assert.Zero(t, res.Percent)
}

func TestAccuracyComputeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAccuracyCalculator(logger.NewDiscardLogger(), lineTokenizer{}).Compute(ctx, "a\nb")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSpeedConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultSpeedConfig().Validate())
	assert.Equal(t, 10, DefaultSpeedConfig().Iterations)
	assert.Error(t, SpeedConfig{Iterations: 0}.Validate())
	assert.Error(t, SpeedConfig{Iterations: 1, WarmUpIterations: -1}.Validate())

	_, err := NewSpeedBenchmark(DefaultSpeedConfig(), logger.NewDiscardLogger(), nil)
	assert.Error(t, err)
}

func TestSpeedRun(t *testing.T) {
	factory := &countingFactory{}
	b, err := NewSpeedBenchmark(SpeedConfig{Iterations: 5}, logger.NewDiscardLogger(), factory)
	require.NoError(t, err)

	var observed []int
	b.WithObserver(func(i int, elapsed time.Duration) {
		observed = append(observed, i)
	})

	res, err := b.Run(context.Background(), "A.\nB.\n")
	require.NoError(t, err)

	assert.Len(t, res.Iterations, 5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, observed)
	assert.Equal(t, int64(5), factory.created.Load(), "a tokenizer is loaded per iteration")
	assert.Equal(t, 2, res.Sentences)

	var sum time.Duration
	for _, d := range res.Iterations {
		sum += d
	}
	assert.Equal(t, sum, res.Total)
	assert.Equal(t, res.Total/5, res.Average())
}

func TestSpeedRunWarmUpLoadsExtraTokenizer(t *testing.T) {
	factory := &countingFactory{}
	b, err := NewSpeedBenchmark(SpeedConfig{Iterations: 2, WarmUpIterations: 3}, logger.NewDiscardLogger(), factory)
	require.NoError(t, err)

	res, err := b.Run(context.Background(), "A.")
	require.NoError(t, err)
	assert.Len(t, res.Iterations, 2)
	assert.Equal(t, int64(3), factory.created.Load())
}

func TestSpeedRunErrors(t *testing.T) {
	loadErr := errors.New("bad model")
	b, err := NewSpeedBenchmark(SpeedConfig{Iterations: 3}, logger.NewDiscardLogger(), &countingFactory{err: loadErr})
	require.NoError(t, err)

	_, err = b.Run(context.Background(), "A.")
	assert.ErrorIs(t, err, loadErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b, err = NewSpeedBenchmark(SpeedConfig{Iterations: 3}, logger.NewDiscardLogger(), &countingFactory{})
	require.NoError(t, err)

	res, err := b.Run(ctx, "A.")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Iterations)
}
