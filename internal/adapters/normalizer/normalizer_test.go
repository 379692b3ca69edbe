package normalizer

import "testing"

func TestBrownNormalizer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"period", "Hello world .", "Hello world.\n"},
		{"exclamation", "Stop !", "Stop!\n"},
		{"question", "Why ?", "Why?\n"},
		{"newlines become spaces", "one\ntwo\nthree", "one two three"},
		{"newline before period", "end\n.", "end.\n"},
		{"opening quotes removed", "''Quoted", "Quoted"},
		{"closing quotes removed", "Quoted``", "Quoted"},
		{"odd quote run keeps remainder", "'''", "'"},
		{"quote removal exposes spacing", "word '' .", "word .\n"},
		{"no trailing space no rewrite", "word.", "word."},
		{"empty", "", ""},
	}

	n := NewBrownNormalizer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.input); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestRewriteNormalizerCopiesRules(t *testing.T) {
	rules := []Rewrite{{Old: "a", New: "b"}}
	n := NewRewriteNormalizer(rules...)
	rules[0].New = "c"

	if got := n.Normalize("aa"); got != "bb" {
		t.Errorf("Normalize = %q, want %q", got, "bb")
	}
}

func TestFactory(t *testing.T) {
	// U+FB01 is the "fi" ligature: NFKC expands it, NFC keeps it.
	// "e" + U+0301 composes to U+00E9 under both forms.
	input := "e\u0301 \ufb01ne ."

	tests := []struct {
		name     string
		flag     string
		expected string
	}{
		{"none", "none", "e\u0301 \ufb01ne.\n"},
		{"default", "", "e\u0301 \ufb01ne.\n"},
		{"nfc", "nfc", "\u00e9 \ufb01ne.\n"},
		{"nfkc", "NFKC", "\u00e9 fine.\n"},
	}

	factory := NewNormalizerFactory()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			typ, err := ParseNormalizerType(tc.flag)
			if err != nil {
				t.Fatalf("ParseNormalizerType(%q) returned error: %v", tc.flag, err)
			}
			if got := factory.CreateNormalizer(typ).Normalize(input); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", input, got, tc.expected)
			}
		})
	}

	if _, err := ParseNormalizerType("nfx"); err == nil {
		t.Error("expected error for unknown normalizer")
	}
}
