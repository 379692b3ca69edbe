package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
)

const sample = "The cat sat on the mat.   The dog\nbarked loudly."

func TestRunStdin(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), nil, strings.NewReader(sample), &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "The cat sat on the mat.\nThe dog barked loudly.\n", stdout.String())
}

func TestRunFileAndDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-f", path, "--delimiter={{sentence_break}}"}, strings.NewReader(""), &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "The cat sat on the mat.{{sentence_break}}The dog barked loudly.{{sentence_break}}", stdout.String())
}

func TestRunVersion(t *testing.T) {
	VERSION, COMMITHASH = "1.2.3", "abc123"
	defer func() { VERSION, COMMITHASH = "", "" }()

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--version"}, strings.NewReader(""), &stdout, io.Discard))
	assert.Equal(t, "1.2.3\nabc123\n", stdout.String())
}

func TestRunErrors(t *testing.T) {
	err := run(context.Background(), []string{"--no-such-flag"}, strings.NewReader(""), io.Discard, io.Discard)
	assert.True(t, errors.Is(err, domain.ErrArgument), "got %v", err)

	err = run(context.Background(), []string{"-f", filepath.Join(t.TempDir(), "missing.txt")}, strings.NewReader(""), io.Discard, io.Discard)
	var fserr *domain.FilesystemError
	assert.True(t, errors.As(err, &fserr), "got %v", err)
}
