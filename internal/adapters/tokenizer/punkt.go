// Package tokenizer wraps the pre-trained punkt sentence tokenizer.
package tokenizer

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
	"github.com/neurosnap/sentences/english"

	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

// EnglishTraining names the English training data bundled with the punkt library.
const EnglishTraining = "english"

const englishAsset = "data/english.json"

// Config describes how a tokenizer model is loaded.
// A Config is a value: copies share nothing with the tokenizers built from them.
type Config struct {
	// Training is either EnglishTraining or a path to punkt JSON training data.
	Training string
	// Language selects the word tokenizer; "english" adds the English
	// multi-punctuation annotations, anything else uses the generic tokenizer.
	Language string
	// abbreviations extends the model's abbreviation types; set through WithAbbreviations.
	abbreviations []string
}

// DefaultConfig returns the bundled English model.
func DefaultConfig() Config {
	return Config{
		Training: EnglishTraining,
		Language: "english",
	}
}

// WithAbbreviations returns a copy of c with extra abbreviation types.
// Entries are lowercased, trimmed of a trailing period and deduplicated.
func (c Config) WithAbbreviations(abbrevs ...string) Config {
	seen := make(map[string]struct{}, len(c.abbreviations)+len(abbrevs))
	merged := make([]string, 0, len(c.abbreviations)+len(abbrevs))
	for _, a := range append(append([]string(nil), c.abbreviations...), abbrevs...) {
		a = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(a)), ".")
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		merged = append(merged, a)
	}
	sort.Strings(merged)
	c.abbreviations = merged
	return c
}

// Abbreviations returns a copy of the configured abbreviation overrides.
func (c Config) Abbreviations() []string {
	return append([]string(nil), c.abbreviations...)
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Training) == "" {
		return errors.New("training data must be set")
	}
	return nil
}

// Punkt is a sentence tokenizer backed by a loaded punkt model.
type Punkt struct {
	tokenizer *sentences.DefaultSentenceTokenizer
	config    Config
}

var _ ports.SentenceTokenizer = (*Punkt)(nil)

// New loads the training data named by cfg and builds a tokenizer.
// Every call loads a private copy of the model, so abbreviation overrides
// never leak between tokenizers.
func New(cfg Config) (*Punkt, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	raw, err := loadTraining(cfg.Training)
	if err != nil {
		return nil, err
	}

	storage, err := sentences.LoadTraining(raw)
	if err != nil {
		return nil, fmt.Errorf("parse training data %s: %w", cfg.Training, err)
	}
	fillMissingSets(storage)
	for _, abbr := range cfg.abbreviations {
		storage.AbbrevTypes.Add(abbr)
	}

	var tok *sentences.DefaultSentenceTokenizer
	if strings.EqualFold(cfg.Language, "english") {
		tok, err = english.NewSentenceTokenizer(storage)
		if err != nil {
			return nil, fmt.Errorf("build english tokenizer: %w", err)
		}
	} else {
		tok = sentences.NewSentenceTokenizer(storage)
	}

	return &Punkt{tokenizer: tok, config: cfg}, nil
}

// fillMissingSets replaces sets absent from the training JSON with empty ones,
// so later additions never write to a nil map.
func fillMissingSets(storage *sentences.Storage) {
	if storage.AbbrevTypes == nil {
		storage.AbbrevTypes = sentences.SetString{}
	}
	if storage.Collocations == nil {
		storage.Collocations = sentences.SetString{}
	}
	if storage.SentStarters == nil {
		storage.SentStarters = sentences.SetString{}
	}
	if storage.OrthoContext == nil {
		storage.OrthoContext = sentences.SetString{}
	}
}

func loadTraining(name string) ([]byte, error) {
	if name == EnglishTraining {
		b, err := sentencesdata.Asset(englishAsset)
		if err != nil {
			return nil, fmt.Errorf("load bundled english training data: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read training data: %w", err)
	}
	return b, nil
}

// Tokenize splits text into sentences in order.
func (p *Punkt) Tokenize(text string) []string {
	raw := p.tokenizer.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		out = append(out, s.Text)
	}
	return out
}

// IsAbbreviation reports whether the loaded model treats typ as an abbreviation.
func (p *Punkt) IsAbbreviation(typ string) bool {
	return p.tokenizer.Storage.AbbrevTypes.Has(strings.ToLower(typ))
}

// Config returns the configuration the tokenizer was built from.
func (p *Punkt) Config() Config {
	return p.config
}

// Factory builds a fresh Punkt tokenizer per call.
type Factory struct {
	Config Config
}

// NewTokenizer implements ports.TokenizerFactory.
func (f Factory) NewTokenizer() (ports.SentenceTokenizer, error) {
	return New(f.Config)
}
