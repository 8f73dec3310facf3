package signals

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"already clean", "hello world", "hello world"},
		{"leading and trailing", "  hello  ", "hello"},
		{"collapsed runs", "a \t\n  b\r\nc", "a b c"},
		{"only whitespace", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tt.input); got != tt.expected {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeWhitespaceIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  spaced   out \n text  ",
		"already normalized",
		"\t\t\t",
		"árvíztűrő   tükörfúrógép",
	}

	for _, input := range inputs {
		once := NormalizeWhitespace(input)
		twice := NormalizeWhitespace(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty", "", 0},
		{"simple", "one two three", 3},
		{"punctuation separated", "one,two;three!", 3},
		{"hungarian accents", "árvíztűrő tükörfúrógép", 2},
		{"mixed digits", "order 12345 shipped", 3},
		{"cyrillic", "привет мир", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.input); got != tt.expected {
				t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("expected no truncation, got %q", got)
	}
	if got := truncate("hello world", 5); got != "hello…" {
		t.Errorf("expected ellipsis marker, got %q", got)
	}
	// Rune-aware: must not cut inside a multi-byte character.
	if got := truncate("árvíz", 3); got != "árv…" {
		t.Errorf("expected rune-aware cut, got %q", got)
	}
}
