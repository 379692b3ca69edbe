// Package corpus turns a directory of XML corpus files into one plain text blob.
package corpus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

// WriteMode selects how the output file is produced.
type WriteMode int

const (
	// WriteAtomic streams documents into a temporary file and renames it over
	// the output once every document succeeded. A failed run leaves any
	// existing output untouched.
	WriteAtomic WriteMode = iota
	// WriteIncremental streams documents straight into the output file.
	// Documents written before a failure stay on disk.
	WriteIncremental
)

func (m WriteMode) String() string {
	switch m {
	case WriteIncremental:
		return "incremental"
	default:
		return "atomic"
	}
}

// Separator precedes every normalized document in the output.
const Separator = "\n"

// Config holds configuration for corpus normalization.
type Config struct {
	// Extension is the case-sensitive file name suffix of documents to process.
	Extension  string
	Mode       WriteMode
	FilePerm   os.FileMode
	BufferSize int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Extension:  ".xml",
		Mode:       WriteAtomic,
		FilePerm:   0o644,
		BufferSize: 64 * 1024,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Extension == "" {
		return errors.New("extension must not be empty")
	}
	if c.Mode != WriteAtomic && c.Mode != WriteIncremental {
		return fmt.Errorf("unknown write mode %d", c.Mode)
	}
	if c.BufferSize <= 0 {
		return errors.New("buffer size must be greater than 0")
	}
	return nil
}

// Normalizer extracts, rewrites and concatenates corpus documents.
type Normalizer struct {
	config     Config
	logger     ports.Logger
	extractor  ports.TextExtractor
	normalizer ports.Normalizer
	progress   io.Writer
}

// New creates a corpus normalizer. Progress lines go to progress; nil discards them.
func New(config Config, logger ports.Logger, extractor ports.TextExtractor, normalizer ports.Normalizer, progress io.Writer) (*Normalizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil || extractor == nil || normalizer == nil {
		return nil, errors.New("logger, extractor and normalizer are required")
	}
	if config.FilePerm == 0 {
		config.FilePerm = 0o644
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Normalizer{
		config:     config,
		logger:     logger,
		extractor:  extractor,
		normalizer: normalizer,
		progress:   progress,
	}, nil
}

// Documents lists the files in dir whose names end with the configured extension,
// sorted by name. skipped counts the directory entries that were left out.
func (n *Normalizer) Documents(dir string) (docs []domain.Document, skipped int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, &domain.FilesystemError{Op: "read dir", Path: dir, Err: err}
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, n.config.Extension) {
			skipped++
			continue
		}
		docs = append(docs, domain.Document{Name: name, Path: filepath.Join(dir, name)})
	}
	return docs, skipped, nil
}

// NormalizeDocument extracts the text of one XML document and applies the rewrites.
// name is only used in error messages.
func (n *Normalizer) NormalizeDocument(name string, r io.Reader) (string, error) {
	text, err := n.extractor.Extract(r)
	if err != nil {
		perr := &domain.ParseError{Path: name, Err: err}
		var syn *xml.SyntaxError
		if errors.As(err, &syn) {
			perr.Line = syn.Line
		}
		return "", perr
	}
	return n.normalizer.Normalize(text), nil
}

// NormalizeFile reads and normalizes a single document.
func (n *Normalizer) NormalizeFile(doc domain.Document) (string, error) {
	data, err := os.ReadFile(doc.Path)
	if err != nil {
		return "", &domain.FilesystemError{Op: "read", Path: doc.Path, Err: err}
	}
	return n.NormalizeDocument(doc.Path, bytes.NewReader(data))
}

// WriteCorpus normalizes docs in order and writes each one, preceded by Separator, to w.
// flush is called after every document when non-nil.
func (n *Normalizer) WriteCorpus(ctx context.Context, docs []domain.Document, w io.Writer, flush func() error) (int64, error) {
	var written int64
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			n.logger.Warn("Normalization cancelled by context", "error", ctx.Err())
			return written, ctx.Err()
		default:
		}

		fmt.Fprintf(n.progress, "Processing file: %s\n", doc.Name)

		text, err := n.NormalizeFile(doc)
		if err != nil {
			n.logger.Error("Failed to normalize document", "file", doc.Path, "error", err)
			return written, err
		}

		k, err := io.WriteString(w, Separator+text)
		written += int64(k)
		if err != nil {
			return written, &domain.FilesystemError{Op: "write", Path: doc.Name, Err: err}
		}
		if flush != nil {
			if err := flush(); err != nil {
				return written, &domain.FilesystemError{Op: "flush", Path: doc.Name, Err: err}
			}
		}

		n.logger.Debug("Normalized document", "file", doc.Name, "bytes", k)
	}
	return written, nil
}

// NormalizeDir normalizes every matching document in inputDir into outputPath.
func (n *Normalizer) NormalizeDir(ctx context.Context, inputDir, outputPath string) (domain.CorpusStats, error) {
	startTime := time.Now()

	docs, skipped, err := n.Documents(inputDir)
	if err != nil {
		n.logger.Error("Failed to list input directory", "dir", inputDir, "error", err)
		return domain.CorpusStats{}, err
	}

	n.logger.Info("Normalizing corpus",
		"input", inputDir,
		"output", outputPath,
		"documents", len(docs),
		"skipped", skipped,
		"mode", n.config.Mode,
	)

	stats := domain.CorpusStats{Documents: len(docs), Skipped: skipped}
	switch n.config.Mode {
	case WriteIncremental:
		stats.BytesWritten, err = n.writeIncremental(ctx, docs, outputPath)
	default:
		stats.BytesWritten, err = n.writeAtomic(ctx, docs, outputPath)
	}
	stats.Duration = time.Since(startTime)
	if err != nil {
		return stats, err
	}

	n.logger.Info("Corpus normalized",
		"documents", stats.Documents,
		"bytes_written", stats.BytesWritten,
		"duration", stats.Duration,
	)
	return stats, nil
}

func (n *Normalizer) writeIncremental(ctx context.Context, docs []domain.Document, outputPath string) (int64, error) {
	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, n.config.FilePerm)
	if err != nil {
		return 0, &domain.FilesystemError{Op: "create", Path: outputPath, Err: err}
	}
	defer f.Close()

	bw := bufio.NewWriterSize(f, n.config.BufferSize)
	written, err := n.WriteCorpus(ctx, docs, bw, bw.Flush)
	if err != nil {
		return written, err
	}
	if err := bw.Flush(); err != nil {
		return written, &domain.FilesystemError{Op: "write", Path: outputPath, Err: err}
	}
	if err := f.Close(); err != nil {
		return written, &domain.FilesystemError{Op: "close", Path: outputPath, Err: err}
	}
	return written, nil
}

func (n *Normalizer) writeAtomic(ctx context.Context, docs []domain.Document, outputPath string) (written int64, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".tmp-*")
	if err != nil {
		return 0, &domain.FilesystemError{Op: "create", Path: outputPath, Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriterSize(tmp, n.config.BufferSize)
	written, err = n.WriteCorpus(ctx, docs, bw, nil)
	if err != nil {
		return written, err
	}
	if err = bw.Flush(); err != nil {
		return written, &domain.FilesystemError{Op: "write", Path: tmpPath, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return written, &domain.FilesystemError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return written, &domain.FilesystemError{Op: "close", Path: tmpPath, Err: err}
	}
	if err = os.Chmod(tmpPath, n.config.FilePerm); err != nil {
		return written, &domain.FilesystemError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err = os.Rename(tmpPath, outputPath); err != nil {
		return written, &domain.FilesystemError{Op: "rename", Path: outputPath, Err: err}
	}
	return written, nil
}
