package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

// Rewrite is a single global substitution.
type Rewrite struct {
	Old string
	New string
}

// BrownRewrites approximate sentence-final punctuation spacing in Brown corpus text.
// Each rule runs over the output of the previous one.
var BrownRewrites = []Rewrite{
	{Old: "\n", New: " "},
	{Old: "''", New: ""}, // closing quotes
	{Old: "``", New: ""}, // opening quotes
	{Old: " .", New: ".\n"},
	{Old: " !", New: "!\n"},
	{Old: " ?", New: "?\n"},
}

// BrownNormalizer applies BrownRewrites in order.
type BrownNormalizer struct {
	rewrites []Rewrite
}

// NewBrownNormalizer creates the default corpus normalizer.
func NewBrownNormalizer() ports.Normalizer {
	return &BrownNormalizer{rewrites: BrownRewrites}
}

// NewRewriteNormalizer creates a normalizer applying the given rewrites in order.
func NewRewriteNormalizer(rewrites ...Rewrite) ports.Normalizer {
	rw := make([]Rewrite, len(rewrites))
	copy(rw, rewrites)
	return &BrownNormalizer{rewrites: rw}
}

// Normalize applies every rewrite as a sequential global substitution.
func (n *BrownNormalizer) Normalize(text string) string {
	for _, rw := range n.rewrites {
		text = strings.ReplaceAll(text, rw.Old, rw.New)
	}
	return text
}

// Chain runs normalizers left to right.
type Chain []ports.Normalizer

// Normalize feeds the text through every normalizer in the chain.
func (c Chain) Normalize(text string) string {
	for _, n := range c {
		text = n.Normalize(text)
	}
	return text
}
