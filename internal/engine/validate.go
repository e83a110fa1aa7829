package engine

import "strings"

// Check identifies one of the seven correctness checks a candidate position
// must pass before a chunk may be applied there.
type Check int

const (
	// CheckContextAfter - the context_after window must exist and match
	// immediately after the edit region.
	CheckContextAfter Check = iota + 1

	// CheckOldLines - the lines after context_before must match old_lines.
	// Primary disambiguator when context_before matches in several places.
	CheckOldLines

	// CheckInsertionPoint - for a pure insertion, context_after must begin
	// with no gap after context_before.
	CheckInsertionPoint

	// CheckDeletionExact - a pure deletion must match the stated old_lines
	// byte for byte, not just under whitespace tolerance.
	CheckDeletionExact

	// CheckBounds - the edit region must lie entirely within the body.
	CheckBounds

	// CheckEndOfBody - empty context_after is only valid when the edit
	// region reaches the end of the body.
	CheckEndOfBody

	// CheckLineEnding - chunk lines carrying embedded terminators must agree
	// with the body's detected line-ending convention.
	CheckLineEnding
)

func (c Check) String() string {
	switch c {
	case CheckContextAfter:
		return "context_after_match"
	case CheckOldLines:
		return "old_lines_match"
	case CheckInsertionPoint:
		return "insertion_adjacency"
	case CheckDeletionExact:
		return "deletion_exactness"
	case CheckBounds:
		return "boundary_containment"
	case CheckEndOfBody:
		return "end_of_body_context"
	case CheckLineEnding:
		return "line_ending_homogeneity"
	default:
		return "unknown"
	}
}

// certify runs the seven checks against the original line sequence for one
// candidate position, short-circuiting on the first failure. A nil return
// means the position is certified for this chunk.
func certify(originalLines []string, chunk Chunk, position int, body *Body) *PatchError {
	editStart := position + 1
	editEnd := editStart + len(chunk.OldLines)

	// Check 1 (and 3 for insertions): context_after must sit immediately
	// after the edit region. A failure on a pure insertion means the stated
	// insertion point is ambiguous, which is its own rejection.
	if len(chunk.ContextAfter) > 0 {
		afterEnd := editEnd + len(chunk.ContextAfter)
		if afterEnd > len(originalLines) {
			if len(chunk.OldLines) == 0 {
				return checkErrorf(CheckInsertionPoint,
					"insertion point at line %d: context_after extends past end of body (%d lines)",
					editStart+1, len(originalLines))
			}
			return checkErrorf(CheckContextAfter,
				"context_after out of bounds: needs lines %d-%d, body has %d lines",
				editEnd+1, afterEnd, len(originalLines))
		}
		if !linesMatch(originalLines[editEnd:afterEnd], chunk.ContextAfter) {
			if len(chunk.OldLines) == 0 {
				return checkErrorf(CheckInsertionPoint,
					"insertion point ambiguous: context_after does not immediately follow context_before at line %d (expected %q, found %q)",
					editStart+1, chunk.ContextAfter[0], originalLines[editEnd])
			}
			return checkErrorf(CheckContextAfter,
				"context_after mismatch at line %d: expected %q, found %q",
				editEnd+1, chunk.ContextAfter[0], originalLines[editEnd])
		}
	}

	// Check 2: old_lines must occupy the region right after context_before.
	// A window truncated by the end of the body fails the length comparison.
	window := originalLines[editStart:min(editEnd, len(originalLines))]
	if !linesMatch(window, chunk.OldLines) {
		return checkErrorf(CheckOldLines,
			"old_lines mismatch at line %d: expected %s, found %s",
			editStart+1, quoteLines(chunk.OldLines), quoteLines(window))
	}

	// Check 4: deletions are high risk; require exact content.
	if len(chunk.NewLines) == 0 && len(chunk.OldLines) > 0 {
		if !linesEqual(originalLines[editStart:editEnd], chunk.OldLines) {
			return checkErrorf(CheckDeletionExact,
				"deletion at line %d differs from actual content (exact match required): expected %s, found %s",
				editStart+1, quoteLines(chunk.OldLines), quoteLines(originalLines[editStart:editEnd]))
		}
	}

	// Check 5: edit region containment.
	if position < 0 || position >= len(originalLines) || editEnd > len(originalLines) {
		return checkErrorf(CheckBounds,
			"edit region [%d, %d) outside body of %d lines", editStart, editEnd, len(originalLines))
	}

	// Check 6: lines remaining after the edit require context_after.
	if len(chunk.ContextAfter) == 0 && editEnd < len(originalLines) {
		return checkErrorf(CheckEndOfBody,
			"empty context_after but %d lines remain after the edit region", len(originalLines)-editEnd)
	}

	// Check 7: embedded terminators must agree with the body's convention.
	for _, group := range [][]string{chunk.ContextBefore, chunk.OldLines, chunk.NewLines, chunk.ContextAfter} {
		for _, line := range group {
			if !strings.ContainsAny(line, "\r\n") {
				continue
			}
			if e := DetectLineEnding(line); e != body.Ending {
				return checkErrorf(CheckLineEnding,
					"chunk line %q uses %s but body uses %s", line, e, body.Ending)
			}
		}
	}

	return nil
}

// locate finds the position at which chunk applies. Candidates are tried in
// ascending order and the first one that certifies wins; this prefers the
// earliest context match that is fully consistent with the rest of the chunk
// over making the caller disambiguate.
func locate(originalLines []string, body *Body, chunk Chunk) (int, *PatchError) {
	candidates, perr := findCandidates(originalLines, chunk.ContextBefore)
	if perr != nil {
		return 0, perr
	}

	var first *PatchError
	for _, pos := range candidates {
		cerr := certify(originalLines, chunk, pos, body)
		if cerr == nil {
			return pos, nil
		}
		if first == nil {
			first = cerr
		}
	}

	if len(candidates) == 1 {
		return 0, first
	}
	return 0, &PatchError{
		Class:   FailAmbiguous,
		Message: first.Message,
		Details: map[string]any{"candidates_tried": len(candidates)},
	}
}

func quoteLines(lines []string) string {
	quoted := make([]string, len(lines))
	for i, l := range lines {
		quoted[i] = "\"" + l + "\""
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
