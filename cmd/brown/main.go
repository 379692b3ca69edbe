// Command brown converts a directory of Brown corpus XML files into one plain
// text file with a sentence per line.
//
//	brown [--incremental] [--unicode=none|nfc|nfkc] <input-dir> <output-file>
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
	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/pkg/corpus"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "brown: %v\n", err)
		if errors.Is(err, domain.ErrArgument) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	app := kingpin.New("brown", "Convert a directory of XML corpus files into one plain text file.")
	input := app.Arg("input", "directory holding the .xml documents").Required().String()
	output := app.Arg("output", "text file to create or overwrite").Required().String()
	incremental := app.Flag("incremental", "write each document as soon as it is processed; a failure keeps the earlier documents").Bool()
	unicodeForm := app.Flag("unicode", "unicode normalization before the rewrites: none, nfc or nfkc").Default("none").String()

	if _, err := app.Parse(args); err != nil {
		return domain.ArgumentError("%v", err)
	}

	lg, err := l.NewStandardFactory().CreateLogger(logger.DefaultConfig(stderr))
	if err != nil {
		return err
	}
	defer lg.Close()

	n, err := corpus.New(
		corpus.WithLogger(lg),
		corpus.WithProgress(stdout),
		corpus.WithIncremental(*incremental),
		corpus.WithUnicodeForm(*unicodeForm),
	)
	if err != nil {
		return err
	}

	_, err = n.NormalizeDir(ctx, *input, *output)
	return err
}
