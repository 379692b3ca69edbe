// Package corpus converts a directory of XML corpus documents into a single
// plain text file with one sentence per line.
package corpus

import (
	"context"
	"io"

	"github.com/baditaflorin/go_sentence_bench/internal/adapters/extractor"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/normalizer"
	corecorpus "github.com/baditaflorin/go_sentence_bench/internal/core/corpus"
	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
	"github.com/baditaflorin/l"
)

// Stats summarizes a normalization run.
type Stats = domain.CorpusStats

// Error types returned by the normalizer.
type (
	FilesystemError = domain.FilesystemError
	ParseError      = domain.ParseError
)

// ErrArgument is wrapped by errors caused by invalid options.
var ErrArgument = domain.ErrArgument

// Normalizer turns XML corpus directories into sentence-per-line text.
type Normalizer struct {
	normalizer *corecorpus.Normalizer
	logger     ports.Logger
}

// Option defines a functional option for configuring a Normalizer.
type Option func(*config)

type config struct {
	Extension   string
	Incremental bool
	UnicodeForm string
	Progress    io.Writer
	Logger      ports.Logger
	Normalizer  ports.Normalizer
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithProgress sets where "Processing file: <name>" lines are written.
func WithProgress(w io.Writer) Option {
	return func(cfg *config) {
		cfg.Progress = w
	}
}

// WithIncremental writes documents straight to the output file, so a failed
// run keeps the documents that were already written.
func WithIncremental(incremental bool) Option {
	return func(cfg *config) {
		cfg.Incremental = incremental
	}
}

// WithUnicodeForm applies "nfc" or "nfkc" normalization before the rewrites.
// "none" or "" disables it.
func WithUnicodeForm(form string) Option {
	return func(cfg *config) {
		cfg.UnicodeForm = form
	}
}

// WithExtension changes the document file suffix. Matching is case-sensitive.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		cfg.Extension = ext
	}
}

// WithNormalizer replaces the text rewrites applied to each document.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *config) {
		cfg.Normalizer = n
	}
}

// New creates a corpus normalizer.
func New(opts ...Option) (*Normalizer, error) {
	cfg := &config{Extension: corecorpus.DefaultConfig().Extension}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	if cfg.Normalizer == nil {
		typ, err := normalizer.ParseNormalizerType(cfg.UnicodeForm)
		if err != nil {
			return nil, domain.ArgumentError("%v", err)
		}
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(typ)
	}

	coreConfig := corecorpus.DefaultConfig()
	coreConfig.Extension = cfg.Extension
	if cfg.Incremental {
		coreConfig.Mode = corecorpus.WriteIncremental
	}

	n, err := corecorpus.New(coreConfig, cfg.Logger, extractor.NewXMLTextExtractor(), cfg.Normalizer, cfg.Progress)
	if err != nil {
		return nil, err
	}
	return &Normalizer{normalizer: n, logger: cfg.Logger}, nil
}

// NormalizeDir writes every document of inputDir, in name order, to outputPath.
func (n *Normalizer) NormalizeDir(ctx context.Context, inputDir, outputPath string) (Stats, error) {
	return n.normalizer.NormalizeDir(ctx, inputDir, outputPath)
}

// NormalizeDocument returns the normalized text of a single XML document.
func (n *Normalizer) NormalizeDocument(name string, r io.Reader) (string, error) {
	return n.normalizer.NormalizeDocument(name, r)
}
