package engine

import "strings"

// linesMatch reports whether two line sequences are equal under trailing
// whitespace tolerance. LLM-authored context frequently differs from the
// file in trailing spaces or tabs, which is immaterial to identity. Leading
// whitespace is indentation and must match exactly.
func linesMatch(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i := range actual {
		if strings.TrimRight(actual[i], " \t") != strings.TrimRight(expected[i], " \t") {
			return false
		}
	}
	return true
}

// linesEqual is byte-for-byte sequence equality, used where the tolerant
// comparison is not safe enough (deletions).
func linesEqual(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i := range actual {
		if actual[i] != expected[i] {
			return false
		}
	}
	return true
}
