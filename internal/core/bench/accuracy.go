// Package bench measures a sentence tokenizer against a line-per-sentence corpus.
package bench

import (
	"context"
	"strings"

	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

// ExpectedSentences counts the sentences of a reference text holding one sentence
// per line. It counts the pieces of a split on "\n", so a trailing newline adds an
// empty final piece.
func ExpectedSentences(text string) int {
	return strings.Count(text, "\n") + 1
}

// AccuracyCalculator compares tokenizer output with the line structure of a reference text.
type AccuracyCalculator struct {
	logger    ports.Logger
	tokenizer ports.SentenceTokenizer
}

// NewAccuracyCalculator creates a new accuracy calculator.
func NewAccuracyCalculator(logger ports.Logger, tokenizer ports.SentenceTokenizer) *AccuracyCalculator {
	return &AccuracyCalculator{logger: logger, tokenizer: tokenizer}
}

// Compute tokenizes text and reports actual sentences as a percentage of expected lines.
func (c *AccuracyCalculator) Compute(ctx context.Context, text string) (domain.AccuracyResult, error) {
	select {
	case <-ctx.Done():
		c.logger.Error("Computation cancelled", "error", ctx.Err())
		return domain.AccuracyResult{}, ctx.Err()
	default:
	}

	expected := ExpectedSentences(text)
	actual := len(c.tokenizer.Tokenize(text))

	result := domain.AccuracyResult{
		Actual:   actual,
		Expected: expected,
		Percent:  float64(actual) / float64(expected) * 100,
	}

	c.logger.Debug("Computed accuracy",
		"actual", result.Actual,
		"expected", result.Expected,
		"percent", result.Percent,
	)
	return result, nil
}
