package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local russian mobile", "8 916 123-45-67", "+79161234567"},
		{"already e164", "+79161234567", "+79161234567"},
		{"international with spaces", "+31 6 12345678", "+31612345678"},
		{"unparsable kept as-is", "call me maybe", "call me maybe"},
		{"invalid number kept as-is", "123", "123"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeE164(tt.input); got != tt.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
