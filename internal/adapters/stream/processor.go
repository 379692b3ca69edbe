package stream

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/baditaflorin/go_sentence_bench/internal/pool"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

const (
	// DefaultBufferSize defines the size of the buffered writer
	DefaultBufferSize = 64 * 1024 // 64KB

	// DefaultDelimiter separates sentences when no delimiter is configured
	DefaultDelimiter = "\n"

	// SentenceBreak is the delimiter the NLTK helper scripts print between sentences
	SentenceBreak = "{{sentence_break}}"

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 500 // sentences
)

// SentenceWriter tokenizes text and writes each sentence followed by a delimiter.
type SentenceWriter struct {
	logger     ports.Logger
	tokenizer  ports.SentenceTokenizer
	bufferPool *pool.BufferPool
	delimiter  string
	bufferSize int
}

// WriteResult summarizes a WriteText call.
type WriteResult struct {
	Sentences      int
	BytesWritten   int64
	ProcessingTime time.Duration
}

// NewSentenceWriter creates a writer using the default delimiter
func NewSentenceWriter(logger ports.Logger, tokenizer ports.SentenceTokenizer) *SentenceWriter {
	return &SentenceWriter{
		logger:     logger,
		tokenizer:  tokenizer,
		bufferPool: pool.NewBufferPool(256),
		delimiter:  DefaultDelimiter,
		bufferSize: DefaultBufferSize,
	}
}

// WithDelimiter sets a custom sentence delimiter
func (w *SentenceWriter) WithDelimiter(delim string) *SentenceWriter {
	w.delimiter = delim
	return w
}

// Collapse joins the whitespace-separated fields of s with single spaces.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// WriteText tokenizes text and writes every sentence, whitespace collapsed, followed by the delimiter.
func (w *SentenceWriter) WriteText(ctx context.Context, text string, out io.Writer) (WriteResult, error) {
	startTime := time.Now()

	if out == nil {
		w.logger.Error("Nil writer provided")
		return WriteResult{}, io.ErrUnexpectedEOF
	}

	sentences := w.tokenizer.Tokenize(text)
	return w.writeSentences(ctx, sentences, out, startTime)
}

// WriteSentences writes already tokenized sentences.
func (w *SentenceWriter) WriteSentences(ctx context.Context, sentences []string, out io.Writer) (WriteResult, error) {
	if out == nil {
		w.logger.Error("Nil writer provided")
		return WriteResult{}, io.ErrUnexpectedEOF
	}
	return w.writeSentences(ctx, sentences, out, time.Now())
}

func (w *SentenceWriter) writeSentences(ctx context.Context, sentences []string, out io.Writer, startTime time.Time) (WriteResult, error) {
	bw := bufio.NewWriterSize(out, w.bufferSize)

	buffer := w.bufferPool.Get()
	defer w.bufferPool.Put(buffer)

	var result WriteResult
	for i, s := range sentences {
		if i%ContextCheckFrequency == 0 {
			select {
			case <-ctx.Done():
				w.logger.Warn("Writing cancelled by context", "error", ctx.Err())
				_ = bw.Flush()
				return result, ctx.Err()
			default:
			}
		}

		*buffer = append((*buffer)[:0], Collapse(s)...)
		*buffer = append(*buffer, w.delimiter...)

		n, err := bw.Write(*buffer)
		result.BytesWritten += int64(n)
		if err != nil {
			w.logger.Error("Error writing to output", "error", err)
			return result, err
		}
		result.Sentences++
	}

	if err := bw.Flush(); err != nil {
		w.logger.Error("Error flushing output", "error", err)
		return result, err
	}

	result.ProcessingTime = time.Since(startTime)
	w.logger.Debug("Sentence writing completed",
		"sentences", result.Sentences,
		"bytes_written", result.BytesWritten,
		"duration", result.ProcessingTime,
	)

	return result, nil
}
