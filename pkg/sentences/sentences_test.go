package sentences

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger(t *testing.T) l.Logger {
	t.Helper()
	lg, err := l.NewStandardFactory().CreateLogger(l.Config{Output: io.Discard})
	require.NoError(t, err)
	return lg
}

func TestWrite(t *testing.T) {
	tok, err := New(WithLogger(discardLogger(t)), WithDelimiter(SentenceBreak))
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := tok.Write(context.Background(), "The cat sat on the mat. The dog barked loudly.", &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "The cat sat on the mat.{{sentence_break}}The dog barked loudly.{{sentence_break}}", out.String())
}

func TestAbbreviationsArePrivate(t *testing.T) {
	withAbbrev, err := New(WithLogger(discardLogger(t)), WithAbbreviations("xyzq."))
	require.NoError(t, err)
	plain, err := New(WithLogger(discardLogger(t)))
	require.NoError(t, err)

	assert.True(t, withAbbrev.IsAbbreviation("xyzq"))
	assert.False(t, plain.IsAbbreviation("xyzq"))
}

func TestMissingTraining(t *testing.T) {
	_, err := New(WithLogger(discardLogger(t)), WithTraining(t.TempDir()+"/missing.json"))
	assert.Error(t, err)
}
