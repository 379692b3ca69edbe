package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_sentence_bench/internal/core/domain"
)

func TestRun(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "brown.txt")
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.xml"), []byte("<text>A sentence .</text>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.xml"), []byte("<text>B sentence !</text>"), 0o644))

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{in, out}, &stdout, io.Discard))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\nA sentence.\n\nB sentence!\n", string(got))
	assert.Equal(t, "Processing file: a.xml\nProcessing file: b.xml\n", stdout.String())
}

func TestRunArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"missing output", []string{"corpus"}},
		{"unknown unicode form", []string{"--unicode=nfd", "corpus", "out.txt"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := run(context.Background(), tc.args, io.Discard, io.Discard)
			assert.True(t, errors.Is(err, domain.ErrArgument), "got %v", err)
		})
	}
}

func TestRunMalformed(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "brown.txt")
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.xml"), []byte("<text>never closed"), 0o644))

	err := run(context.Background(), []string{in, out}, io.Discard, io.Discard)
	var perr *domain.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}
