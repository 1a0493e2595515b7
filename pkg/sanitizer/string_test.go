package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  The Sea View Banquet  ", want: "The Sea View Banquet"},
		{name: "multiple spaces between words", input: "Royal    Palace", want: "Royal Palace"},
		{name: "tabs and newlines", input: "Royal\t\nPalace", want: "Royal Palace"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   \t\n  ", want: ""},
		{name: "preserve special characters", input: " Café & Lawns™ ", want: "Café & Lawns™"},
		{name: "devanagari", input: "  शुभ   विवाह ", want: "शुभ विवाह"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := TrimAndNormalize(TrimAndNormalize(tt.input)); again != tt.want {
				t.Errorf("TrimAndNormalize is not idempotent for %q", tt.input)
			}
		})
	}
}

func TestCityKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Mumbai", "mumbai"},
		{"  New   Delhi ", "newdelhi"},
		{"new-delhi", "newdelhi"},
		{"BENGALURU", "bengaluru"},
		{"", ""},
		{"123", ""},
	}

	for _, tt := range tests {
		if got := CityKey(tt.input); got != tt.want {
			t.Errorf("CityKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Priya@Example.IN "); got != "priya@example.in" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestFilenamePart(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3f2b8c1e-0d4a-4f1e-9a7b-1c2d3e4f5a6b", "3f2b8c1e-0d4a-4f1e-9a7b-1c2d3e4f5a6b"},
		{"../etc/passwd", ".._etc_passwd"},
		{`a"b;c`, "a_b_c"},
		{"  ", ""},
	}

	for _, tt := range tests {
		if got := FilenamePart(tt.input); got != tt.want {
			t.Errorf("FilenamePart(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
