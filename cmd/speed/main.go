// Command speed times loading the punkt model and tokenizing a corpus.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/baditaflorin/l"
	"github.com/cheggaaa/pb"
	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/baditaflorin/go_sentence_bench/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/internal/storage"
	"github.com/baditaflorin/go_sentence_bench/pkg/bench"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "speed: %v\n", err)
		if errors.Is(err, domain.ErrArgument) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	app := kingpin.New("speed", "Time model loading plus tokenization of a corpus.")
	corpusPath := app.Arg("corpus", "text file to tokenize").Default("brownv.txt").String()
	iterations := app.Flag("iterations", "number of timed runs").Short('n').Default("10").Int()
	warmUp := app.Flag("warmup", "untimed runs before timing starts").Default("0").Int()
	training := app.Flag("training", "punkt training data (JSON) to load instead of the bundled english model").Default(tokenizer.EnglishTraining).String()
	progress := app.Flag("progress", "show a progress bar on stderr instead of per-run timings").Bool()
	dbPath := app.Flag("db", "SQLite database to record the run in").String()

	if _, err := app.Parse(args); err != nil {
		return domain.ArgumentError("%v", err)
	}
	if *iterations <= 0 {
		return domain.ArgumentError("iterations must be greater than 0, got %d", *iterations)
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

	observer := func(_ int, elapsed time.Duration) {
		fmt.Fprintln(stdout, "Sentences took: ", elapsed)
	}
	if *progress {
		bar := pb.New(*iterations).Prefix("tokenize ")
		bar.Output = stderr
		bar.Start()
		defer bar.Finish()
		observer = func(int, time.Duration) { bar.Increment() }
	}

	res, err := bench.Speed(ctx, string(raw),
		bench.WithLogger(lg),
		bench.WithTraining(*training),
		bench.WithIterations(*iterations),
		bench.WithWarmUp(*warmUp),
		bench.WithObserver(observer),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Sentences avg took: ", res.AverageSeconds())

	if *dbPath == "" {
		return nil
	}
	store, err := storage.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordSpeed(ctx, *corpusPath, *training, res)
	return err
}
