// Package sentencebench prepares sentence-per-line corpora from XML sources
// and benchmarks the punkt sentence tokenizer against them.
//
// The typical pipeline is:
//
//	NormalizeCorpus(ctx, "brown/", "brown.txt")  // XML documents -> one text file
//	Accuracy(ctx, text)                          // sentences found vs. lines
//	Speed(ctx, text)                             // model load + tokenize timings
//
// Finer control lives in the pkg/corpus, pkg/sentences and pkg/bench packages.
package sentencebench

import (
	"context"

	"github.com/baditaflorin/go_sentence_bench/pkg/bench"
	"github.com/baditaflorin/go_sentence_bench/pkg/corpus"
	"github.com/baditaflorin/go_sentence_bench/pkg/sentences"
)

// NormalizeCorpus writes the normalized text of every .xml document in inputDir to outputPath.
func NormalizeCorpus(ctx context.Context, inputDir, outputPath string, opts ...corpus.Option) (corpus.Stats, error) {
	lg, err := createDefaultLogger()
	if err != nil {
		return corpus.Stats{}, err
	}
	defer lg.Close()

	n, err := corpus.New(append([]corpus.Option{corpus.WithLogger(lg)}, opts...)...)
	if err != nil {
		return corpus.Stats{}, err
	}
	return n.NormalizeDir(ctx, inputDir, outputPath)
}

// Tokenize splits text into sentences with the bundled English model.
func Tokenize(text string) ([]string, error) {
	lg, err := createDefaultLogger()
	if err != nil {
		return nil, err
	}
	defer lg.Close()

	tok, err := sentences.New(sentences.WithLogger(lg))
	if err != nil {
		return nil, err
	}
	return tok.Tokenize(text), nil
}

// Accuracy compares the sentences found in a line-per-sentence text with its line count.
func Accuracy(ctx context.Context, text string, opts ...bench.Option) (bench.AccuracyResult, error) {
	lg, err := createDefaultLogger()
	if err != nil {
		return bench.AccuracyResult{}, err
	}
	defer lg.Close()

	return bench.Accuracy(ctx, text, append([]bench.Option{bench.WithLogger(lg)}, opts...)...)
}

// Speed times model loading plus tokenization of text over the default number of iterations.
func Speed(ctx context.Context, text string, opts ...bench.Option) (bench.SpeedResult, error) {
	lg, err := createDefaultLogger()
	if err != nil {
		return bench.SpeedResult{}, err
	}
	defer lg.Close()

	return bench.Speed(ctx, text, append([]bench.Option{bench.WithLogger(lg)}, opts...)...)
}
