package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "hello", 5},
		{"with ANSI", "\x1b[1mhello\x1b[0m", 5},
		{"star marker", "★ Site", 6},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleLength(tt.input); got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"very short max", "hello", 3, "...", true},
		{"max is 1", "hello", 1, ".", true},
		{"max is 0", "hello", 0, "", true},
		{"unicode text", "Émile Zola", 6, "Émi...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"pads", "ab", 4, "ab  "},
		{"exact", "abcd", 4, "abcd"},
		{"longer", "abcdef", 4, "abcdef"},
		{"ignores ANSI", "\x1b[1mab\x1b[0m", 3, "\x1b[1mab\x1b[0m "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PadRight(tt.text, tt.width); got != tt.want {
				t.Errorf("PadRight(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestFormatTags(t *testing.T) {
	if got := FormatTags([]string{"go", "docs"}); got != "#go #docs" {
		t.Errorf("FormatTags = %q", got)
	}
	if got := FormatTags(nil); got != "" {
		t.Errorf("FormatTags(nil) = %q, want empty", got)
	}
}
