package logger

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		json, debug bool
	}{
		{false, false},
		{true, false},
		{false, true},
		{true, true},
	} {
		l, err := New(tc.json, tc.debug)
		if err != nil {
			t.Fatalf("New(%v, %v) returned error: %v", tc.json, tc.debug, err)
		}
		if got := l.Core().Enabled(-1); got != tc.debug {
			t.Errorf("New(%v, %v): debug enabled = %v, want %v", tc.json, tc.debug, got, tc.debug)
		}
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short string untouched", "python", 10, "python"},
		{"trimmed first", "  python  ", 6, "python"},
		{"truncated with ellipsis", "python developer", 6, "python..."},
		{"zero limit", "python", 0, ""},
		{"multibyte runes", "ingénieur", 5, "ingén..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
				t.Errorf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	field := Preview("resume", strings.Repeat("a", 150))
	if field.Key != "resume" {
		t.Errorf("unexpected key %q", field.Key)
	}
	if len(field.String) != PreviewLength+3 {
		t.Errorf("expected preview of %d chars, got %d", PreviewLength+3, len(field.String))
	}
}
