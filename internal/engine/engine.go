package engine

import (
	"fmt"
	"slices"
	"sort"
)

// certifiedChunk pairs a chunk with its certified position in the original
// line sequence. Positions are never recomputed after certification.
type certifiedChunk struct {
	index    int // 1-based input order, for error reporting
	position int
	chunk    Chunk
}

// Apply validates every chunk against body and, only if all of them certify,
// rewrites the line sequence in a single pass. On any failure the returned
// error names the first offending chunk (1-based) and the original body is
// untouched: validation reads the original lines only, and the rewrite works
// on a clone.
func Apply(body *Body, chunks []Chunk) (*Body, *PatchError) {
	original := body.Lines

	// Validation phase. Malformed chunks are rejected before any search.
	certified := make([]certifiedChunk, 0, len(chunks))
	for i, chunk := range chunks {
		if len(chunk.ContextBefore) == 0 {
			perr := malformedErrorf("context_before must contain at least one line")
			perr.ChunkIndex = i + 1
			return nil, perr
		}
		pos, perr := locate(original, body, chunk)
		if perr != nil {
			perr.ChunkIndex = i + 1
			return nil, perr
		}
		certified = append(certified, certifiedChunk{index: i + 1, position: pos, chunk: chunk})
	}

	if perr := checkOverlaps(certified); perr != nil {
		return nil, perr
	}

	// Ordering phase: apply from the highest position down so earlier
	// splices never shift a position that is still pending.
	sort.Slice(certified, func(i, j int) bool {
		return certified[i].position > certified[j].position
	})

	// Apply phase: pure, deterministic splicing on a cloned line slice.
	lines := slices.Clone(original)
	for _, cc := range certified {
		start := cc.position + 1
		end := start + len(cc.chunk.OldLines)
		if start > len(lines) || end > len(lines) {
			return nil, internalErrorf(
				"certified position %d for chunk %d no longer fits body of %d lines",
				cc.position, cc.index, len(lines))
		}
		replaced := make([]string, 0, len(lines)-len(cc.chunk.OldLines)+len(cc.chunk.NewLines))
		replaced = append(replaced, lines[:start]...)
		replaced = append(replaced, cc.chunk.NewLines...)
		replaced = append(replaced, lines[end:]...)
		lines = replaced
	}

	return &Body{Lines: lines, Ending: body.Ending, TrailingNewline: body.TrailingNewline}, nil
}

// ApplyText is the string-in, string-out form of Apply.
func ApplyText(text string, chunks []Chunk) (string, *PatchError) {
	result, perr := Apply(NewBody(text), chunks)
	if perr != nil {
		return "", perr
	}
	return result.Text(), nil
}

// checkOverlaps rejects the whole request when two certified edit regions
// intersect. Applying both would splice lines already claimed by the other
// chunk; there is no sane merge policy, so the caller must resolve it.
// Insertions are zero-width regions and collide only with a region that
// covers their insertion point, or with another insertion at the same point.
func checkOverlaps(certified []certifiedChunk) *PatchError {
	byPos := slices.Clone(certified)
	sort.Slice(byPos, func(i, j int) bool {
		return byPos[i].position < byPos[j].position
	})

	for i := 1; i < len(byPos); i++ {
		a, b := byPos[i-1], byPos[i]
		aStart, aEnd := a.position+1, a.position+1+len(a.chunk.OldLines)
		bStart, bEnd := b.position+1, b.position+1+len(b.chunk.OldLines)
		if aStart < bEnd && bStart < aEnd || aStart == bStart {
			return &PatchError{
				Class:      FailOverlap,
				ChunkIndex: b.index,
				Message: fmt.Sprintf("edit region collides with chunk %d (lines %d-%d)",
					a.index, aStart+1, aEnd),
				Details: map[string]any{"colliding_chunk_index": a.index},
			}
		}
	}
	return nil
}
