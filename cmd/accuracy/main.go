// Command accuracy compares the number of sentences the tokenizer finds in a
// corpus holding one sentence per line with the number of lines.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"
	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/baditaflorin/go_sentence_bench/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/internal/storage"
	"github.com/baditaflorin/go_sentence_bench/pkg/bench"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "accuracy: %v\n", err)
		if errors.Is(err, domain.ErrArgument) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	app := kingpin.New("accuracy", "Measure how many of a corpus' line-separated sentences the tokenizer finds.")
	corpusPath := app.Arg("corpus", "text file with one sentence per line").Required().String()
	training := app.Flag("training", "punkt training data (JSON) to load instead of the bundled english model").Default(tokenizer.EnglishTraining).String()
	abbrevs := app.Flag("abbrev", "extra abbreviation type, repeatable").Strings()
	dbPath := app.Flag("db", "SQLite database to record the run in").String()

	if _, err := app.Parse(args); err != nil {
		return domain.ArgumentError("%v", err)
	}

	raw, err := os.ReadFile(*corpusPath)
	if err != nil {
		return &domain.FilesystemError{Op: "read", Path: *corpusPath, Err: err}
	}

	lg, err := l.NewStandardFactory().CreateLogger(logger.DefaultConfig(stderr))
	if err != nil {
		return err
	}
	defer lg.Close()

	res, err := bench.Accuracy(ctx, string(raw),
		bench.WithLogger(lg),
		bench.WithTraining(*training),
		bench.WithAbbreviations(*abbrevs...),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Actual Sentences: %d, Expected Sentences: %d, Percent: %f%%\n", res.Actual, res.Expected, res.Percent)

	if *dbPath == "" {
		return nil
	}
	store, err := storage.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordAccuracy(ctx, *corpusPath, *training, res)
	return err
}
