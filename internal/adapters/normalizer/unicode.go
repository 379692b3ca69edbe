package normalizer

import (
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

// UnicodeNormalizer rewrites text into a Unicode normalization form.
type UnicodeNormalizer struct {
	form norm.Form
}

// NewUnicodeNormalizer creates a normalizer for the given form.
func NewUnicodeNormalizer(form norm.Form) ports.Normalizer {
	return &UnicodeNormalizer{form: form}
}

// Normalize returns text in the configured normalization form.
func (n *UnicodeNormalizer) Normalize(text string) string {
	if n.form.IsNormalString(text) {
		return text
	}
	return n.form.String(text)
}
