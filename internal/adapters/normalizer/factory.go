package normalizer

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

// NormalizerFactory creates the normalizer matching a corpus preprocessing mode.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects the normalization pipeline.
type NormalizerType int

const (
	// BrownNormalizerType applies only the punctuation rewrites.
	BrownNormalizerType NormalizerType = iota
	// NFCBrownNormalizerType composes to NFC before the rewrites.
	NFCBrownNormalizerType
	// NFKCBrownNormalizerType applies compatibility composition before the rewrites.
	NFKCBrownNormalizerType
)

func (t NormalizerType) String() string {
	switch t {
	case NFCBrownNormalizerType:
		return "nfc"
	case NFKCBrownNormalizerType:
		return "nfkc"
	default:
		return "none"
	}
}

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case NFCBrownNormalizerType:
		return Chain{NewUnicodeNormalizer(norm.NFC), NewBrownNormalizer()}
	case NFKCBrownNormalizerType:
		return Chain{NewUnicodeNormalizer(norm.NFKC), NewBrownNormalizer()}
	default:
		return NewBrownNormalizer()
	}
}

// ParseNormalizerType maps a flag value ("none", "nfc", "nfkc") to a NormalizerType.
func ParseNormalizerType(name string) (NormalizerType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return BrownNormalizerType, nil
	case "nfc":
		return NFCBrownNormalizerType, nil
	case "nfkc":
		return NFKCBrownNormalizerType, nil
	default:
		return BrownNormalizerType, fmt.Errorf("unknown normalizer %q (want none, nfc or nfkc)", name)
	}
}
