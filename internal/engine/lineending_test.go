package engine

import "testing"

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		name string
		text string
		want LineEnding
	}{
		{"empty", "", LF},
		{"single line no terminator", "hello", LF},
		{"lf only", "a\nb\nc\n", LF},
		{"crlf only", "a\r\nb\r\nc\r\n", CRLF},
		{"cr only", "a\rb\rc\r", CR},
		{"crlf majority", "a\r\nb\r\nc\n", CRLF},
		{"crlf tied with lf falls to lf", "a\r\nb\n", LF},
		{"lf beats cr", "a\nb\rc\n", LF},
		{"cr beats nothing", "a\rb", CR},
		{"mixed cr wins over lf", "a\rb\rc\n", CR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLineEnding(tt.text); got != tt.want {
				t.Errorf("DetectLineEnding(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewBodyRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"lf with trailing", "a\nb\n"},
		{"lf without trailing", "a\nb"},
		{"crlf with trailing", "a\r\nb\r\n"},
		{"cr without trailing", "a\rb"},
		{"single line", "only"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewBody(tt.text).Text(); got != tt.text {
				t.Errorf("NewBody(%q).Text() = %q, want original", tt.text, got)
			}
		})
	}
}

func TestNewBodyDecomposition(t *testing.T) {
	b := NewBody("a\r\nb\r\n")
	if len(b.Lines) != 2 || b.Lines[0] != "a" || b.Lines[1] != "b" {
		t.Errorf("Lines = %v, want [a b]", b.Lines)
	}
	if b.Ending != CRLF {
		t.Errorf("Ending = %s, want CRLF", b.Ending)
	}
	if !b.TrailingNewline {
		t.Error("TrailingNewline should be true")
	}

	b = NewBody("a\nb")
	if b.TrailingNewline {
		t.Error("TrailingNewline should be false without final terminator")
	}
}
