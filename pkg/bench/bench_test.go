package bench

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
)

func discardLogger(t *testing.T) l.Logger {
	t.Helper()
	lg, err := l.NewStandardFactory().CreateLogger(l.Config{Output: io.Discard})
	require.NoError(t, err)
	return lg
}

const corpus = "The cat sat on the mat.\nThe dog barked loudly."

func TestAccuracy(t *testing.T) {
	res, err := Accuracy(context.Background(), corpus, WithLogger(discardLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Expected)
	assert.Equal(t, 2, res.Actual)
	assert.InDelta(t, 100.0, res.Percent, 1e-9)
}

func TestSpeed(t *testing.T) {
	var calls int
	res, err := Speed(context.Background(), corpus,
		WithLogger(discardLogger(t)),
		WithIterations(3),
		WithObserver(func(int, time.Duration) { calls++ }),
	)
	require.NoError(t, err)
	assert.Len(t, res.Iterations, 3)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, res.Sentences)
}

func TestSpeedInvalidIterations(t *testing.T) {
	_, err := Speed(context.Background(), corpus, WithLogger(discardLogger(t)), WithIterations(0))
	assert.ErrorIs(t, err, domain.ErrArgument)
}
