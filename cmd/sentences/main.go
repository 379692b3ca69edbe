// Command sentences prints the sentences of a text, one per delimiter.
//
//	sentences [-f FILE] [-d DELIM] [--training FILE] [--abbrev TYPE ...]
//
// Without --file the text is read from stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baditaflorin/l"
	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/baditaflorin/go_sentence_bench/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/pkg/sentences"
)

// VERSION is the semantic version number
var VERSION string

// COMMITHASH is the git commit hash value
var COMMITHASH string

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "sentences: %v\n", err)
		if errors.Is(err, domain.ErrArgument) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("sentences", "Split text into sentences.")
	version := app.Flag("version", "Get current version of sentences").Short('v').Bool()
	file := app.Flag("file", "Read file as source input instead of stdin").Short('f').String()
	delim := app.Flag("delimiter", "Delimiter used to demarcate sentence boundaries").Short('d').Default("\n").String()
	training := app.Flag("training", "punkt training data (JSON) to load instead of the bundled english model").String()
	abbrevs := app.Flag("abbrev", "extra abbreviation type, repeatable (e.g. etc, al)").Strings()
	debug := app.Flag("debug", "Debug mode").Bool()

	if _, err := app.Parse(args); err != nil {
		return domain.ArgumentError("%v", err)
	}

	if *version {
		fmt.Fprintln(stdout, VERSION)
		fmt.Fprintln(stdout, COMMITHASH)
		return nil
	}

	if *debug {
		fmt.Fprintf(stdout, "file [%s], delim [%s]\n", *file, *delim)
	}

	text, ok, err := readInput(*file, stdin)
	if err != nil || !ok {
		return err
	}

	lg, err := l.NewStandardFactory().CreateLogger(logger.DefaultConfig(stderr))
	if err != nil {
		return err
	}
	defer lg.Close()

	opts := []sentences.Option{
		sentences.WithLogger(lg),
		sentences.WithDelimiter(*delim),
		sentences.WithAbbreviations(*abbrevs...),
	}
	if *training != "" {
		opts = append(opts, sentences.WithTraining(*training))
	}
	tok, err := sentences.New(opts...)
	if err != nil {
		return err
	}

	if *debug {
		for _, s := range tok.Tokenize(text) {
			fmt.Fprintln(stdout, s)
		}
		fmt.Fprintln(stdout, "---")
	}

	_, err = tok.Write(ctx, text, stdout)
	return err
}

// readInput returns the contents of file, or of stdin when file is empty.
// ok is false when stdin is an interactive terminal, in which case there is nothing to read.
func readInput(file string, stdin io.Reader) (text string, ok bool, err error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", false, &domain.FilesystemError{Op: "read", Path: file, Err: err}
		}
		return string(b), true, nil
	}

	if f, isFile := stdin.(*os.File); isFile {
		stat, err := f.Stat()
		if err != nil {
			return "", false, &domain.FilesystemError{Op: "stat", Path: f.Name(), Err: err}
		}
		if stat.Mode()&os.ModeCharDevice != 0 {
			return "", false, nil
		}
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, stdin); err != nil {
		return "", false, &domain.FilesystemError{Op: "read", Path: "stdin", Err: err}
	}
	return sb.String(), true, nil
}
