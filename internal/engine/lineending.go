package engine

import "strings"

// DetectLineEnding infers the dominant newline convention of text.
// CRLF pairs are counted first; bare LF and bare CR counts exclude the
// characters already consumed by a CRLF pair. CRLF wins only on a strict
// majority over both bare counts. Text with no terminator defaults to LF.
func DetectLineEnding(text string) LineEnding {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n") - crlf
	cr := strings.Count(text, "\r") - crlf

	switch {
	case crlf > lf && crlf > cr:
		return CRLF
	case lf > cr:
		return LF
	case cr > 0:
		return CR
	default:
		return LF
	}
}
