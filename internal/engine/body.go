package engine

import "strings"

// LineEnding is a newline convention. The value is the literal terminator.
type LineEnding string

const (
	CRLF LineEnding = "\r\n"
	LF   LineEnding = "\n"
	CR   LineEnding = "\r"
)

func (e LineEnding) String() string {
	switch e {
	case CRLF:
		return "CRLF"
	case CR:
		return "CR"
	default:
		return "LF"
	}
}

// Body is the line decomposition of one editable unit of text. It is built
// once per request and never mutated; Apply works on a cloned line slice.
type Body struct {
	Lines           []string
	Ending          LineEnding
	TrailingNewline bool
}

// NewBody splits raw text into lines, recording the dominant line ending and
// whether the text ended with a terminator. Lines carry no terminators.
func NewBody(text string) *Body {
	b := &Body{Ending: DetectLineEnding(text)}

	norm := strings.ReplaceAll(text, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, "\r", "\n")
	if strings.HasSuffix(norm, "\n") {
		b.TrailingNewline = true
		norm = strings.TrimSuffix(norm, "\n")
	}
	b.Lines = strings.Split(norm, "\n")
	return b
}

// Text reassembles the body using its original line-ending convention.
// The trailing terminator is restored only if the original text had one.
func (b *Body) Text() string {
	out := strings.Join(b.Lines, string(b.Ending))
	if b.TrailingNewline {
		out += string(b.Ending)
	}
	return out
}

// Chunk is a single context-anchored edit descriptor. ContextBefore and
// ContextAfter locate the edit; OldLines/NewLines describe it. An empty
// OldLines is a pure insertion, an empty NewLines a pure deletion.
type Chunk struct {
	ContextBefore []string
	OldLines      []string
	NewLines      []string
	ContextAfter  []string
}
