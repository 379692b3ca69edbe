package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/baditaflorin/go_sentence_bench/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/normalizer"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/stream"
	"github.com/baditaflorin/go_sentence_bench/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
	"github.com/baditaflorin/go_sentence_bench/internal/warmup"
	"github.com/baditaflorin/go_sentence_bench/pkg/corpus"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
	requestTimeout        = 30 * time.Second
)

// TokenizeResponse is the body of a successful /tokenize request
type TokenizeResponse struct {
	Sentences []string `json:"sentences"`
	Count     int      `json:"count"`
	// Text holds the sentences joined by the requested delimiter, if one was given
	Text string `json:"text,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// server holds the components shared by all requests.
type server struct {
	logger    l.Logger
	portsLog  ports.Logger
	corpus    *corpus.Normalizer
	tokenizer *tokenizer.Punkt
}

func main() {
	app := kingpin.New("server", "HTTP service for corpus normalization and sentence tokenization.")
	port := app.Flag("port", "HTTP server port").Default(fmt.Sprint(DefaultPort)).Int()
	readTimeout := app.Flag("read-timeout", "HTTP read timeout").Default(DefaultReadTimeout.String()).Duration()
	writeTimeout := app.Flag("write-timeout", "HTTP write timeout").Default(DefaultWriteTimeout.String()).Duration()
	maxRequestSize := app.Flag("max-request-size", "Maximum request size in bytes").Default(fmt.Sprint(DefaultMaxRequestSize)).Int()
	concurrency := app.Flag("concurrency", "Maximum number of concurrent requests (0 = GOMAXPROCS)").Default(fmt.Sprint(DefaultConcurrency)).Int()
	warmUp := app.Flag("warm-up", "Perform system warm-up on startup").Default("true").Bool()
	logFile := app.Flag("log-file", "Log file path (empty = stdout)").String()
	training := app.Flag("training", "punkt training data (JSON) to load instead of the bundled english model").Default(tokenizer.EnglishTraining).String()
	unicodeForm := app.Flag("unicode", "unicode normalization before the rewrites: none, nfc or nfkc").Default("none").String()

	if _, err := app.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(2)
	}

	lg, err := createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Close()

	lg.Info("Starting sentence HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	s, err := newServer(lg, tokenizer.Config{Training: *training, Language: "english"}, *unicodeForm, *warmUp)
	if err != nil {
		lg.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	httpServer := &fasthttp.Server{
		Handler:               s.requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxConnsPerIP:         0, // unlimited
		MaxRequestsPerConn:    0, // unlimited
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lg.Info("Shutting down server...")
		if err := httpServer.Shutdown(); err != nil {
			lg.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	lg.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := httpServer.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		lg.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	lg.Info("Server stopped")
}

// newServer loads the tokenizer model and builds the corpus normalizer.
func newServer(lg l.Logger, tokConfig tokenizer.Config, unicodeForm string, warmUp bool) (*server, error) {
	portsLog := logger.FromExisting(lg)

	typ, err := normalizer.ParseNormalizerType(unicodeForm)
	if err != nil {
		return nil, err
	}
	norm := normalizer.NewNormalizerFactory().CreateNormalizer(typ)

	c, err := corpus.New(corpus.WithLogger(lg), corpus.WithNormalizer(norm))
	if err != nil {
		return nil, err
	}

	tok, err := tokenizer.New(tokConfig)
	if err != nil {
		return nil, err
	}

	if warmUp {
		mgr := warmup.NewManager(portsLog, warmup.DefaultWarmupConfig())
		mgr.RegisterNormalizer(norm)
		mgr.RegisterTokenizer(tok)
		mgr.WarmUp(context.Background())
	}

	lg.Info("Server components initialized",
		"training", tokConfig.Training,
		"unicode", typ,
		"warm_up", warmUp,
		"cpus", runtime.NumCPU(),
	)

	return &server{
		logger:    lg,
		portsLog:  portsLog,
		corpus:    c,
		tokenizer: tok,
	}, nil
}

// requestHandler is the main fasthttp request handler
func (s *server) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "SentenceServer")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/normalize":
		s.handleNormalize(ctx)
	case "/tokenize":
		s.handleTokenize(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleNormalize turns one XML document into normalized text
func (s *server) handleNormalize(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	text, err := s.corpus.NormalizeDocument("request body", bytes.NewReader(ctx.PostBody()))
	if err != nil {
		var perr *domain.ParseError
		if errors.As(err, &perr) {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			s.writeJSONError(ctx, err.Error())
			return
		}
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.Response.Header.Set("Content-Type", "text/plain; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(text)
}

// handleTokenize splits the request body into sentences
func (s *server) handleTokenize(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	raw := s.tokenizer.Tokenize(string(ctx.PostBody()))
	sentences := make([]string, 0, len(raw))
	for _, sentence := range raw {
		sentences = append(sentences, stream.Collapse(sentence))
	}
	response := TokenizeResponse{Sentences: sentences, Count: len(sentences)}

	if args := ctx.QueryArgs(); args.Has("delimiter") {
		c, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var buf bytes.Buffer
		w := stream.NewSentenceWriter(s.portsLog, s.tokenizer).WithDelimiter(string(args.Peek("delimiter")))
		if _, err := w.WriteSentences(c, sentences, &buf); err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			s.writeJSONError(ctx, "Internal server error")
			return
		}
		response.Text = buf.String()
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, response)
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	cfg := logger.DefaultConfig(output)
	cfg.JsonFormat = true
	cfg.MaxFileSize = 100 * 1024 * 1024 // 100MB

	lg, err := l.NewStandardFactory().CreateLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return lg, nil
}
