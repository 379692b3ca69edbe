package extractor

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocumentOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single text node",
			input:    `<text>Hello world .</text>`,
			expected: "Hello world .",
		},
		{
			name:     "nested elements keep tails",
			input:    `<p>One <s>two</s> three <w>four</w>.</p>`,
			expected: "One two three four.",
		},
		{
			name:     "whitespace between elements is kept verbatim",
			input:    "<TEI>\n<s>A sentence .</s>\n<s>Another !</s>\n</TEI>",
			expected: "\nA sentence .\nAnother !\n",
		},
		{
			name:     "entities decoded and cdata kept",
			input:    `<p>Fish &amp; chips <![CDATA[<raw>]]></p>`,
			expected: "Fish & chips <raw>",
		},
		{
			name:     "comments and processing instructions dropped",
			input:    `<?xml version="1.0"?><!-- header --><p>a<!-- inner -->b<?pi data?>c</p>`,
			expected: "abc",
		},
		{
			name:     "carriage returns folded into newlines",
			input:    "<p>line one\r\nline two</p>",
			expected: "line one\nline two",
		},
		{
			name:     "empty root",
			input:    `<empty/>`,
			expected: "",
		},
		{
			name:     "byte order mark skipped",
			input:    "\xEF\xBB\xBF<p>bom</p>",
			expected: "bom",
		},
		{
			name:     "trailing whitespace after root is ignored",
			input:    "<p>x</p>\n\n",
			expected: "x",
		},
	}

	ex := NewXMLTextExtractor()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ex.Extract(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestExtractLatin1Declaration(t *testing.T) {
	// "café" with é encoded as a single ISO-8859-1 byte.
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><p>caf\xe9</p>"

	got, err := NewXMLTextExtractor().Extract(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestExtractMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed element", `<p>open`},
		{"mismatched tags", `<p><s>text</p></s>`},
		{"empty document", ``},
		{"only whitespace", "  \n "},
		{"two roots", `<a>one</a><b>two</b>`},
		{"text after root", `<a>one</a>tail`},
		{"text before root", `lead<a>one</a>`},
		{"undefined entity", `<p>&nbsp;</p>`},
	}

	ex := NewXMLTextExtractor()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ex.Extract(strings.NewReader(tc.input))
			require.Error(t, err)

			var syn *xml.SyntaxError
			assert.True(t, errors.As(err, &syn), "expected *xml.SyntaxError, got %T", err)
		})
	}
}

func TestExtractReusesBuilders(t *testing.T) {
	ex := NewXMLTextExtractor()

	first, err := ex.Extract(strings.NewReader(`<p>first</p>`))
	require.NoError(t, err)
	second, err := ex.Extract(strings.NewReader(`<p>second</p>`))
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}
