// Package patchtext parses LLM-authored patch text into engine chunks.
// The format is a V4A-style envelope:
//
//	*** Begin Patch
//	*** Update Symbol: path/to/file.go#symbolName
//	@@
//	 context line
//	-old line
//	+new line
//	 post context
//	*** End Patch
//
// Space-prefixed lines before the first -/+ anchor the chunk from above,
// space-prefixed lines after it anchor from below. A -/+ line arriving after
// post-context has begun starts a new chunk whose leading context is the
// previous chunk's trailing context.
package patchtext

import (
	"fmt"
	"strings"

	"github.com/kvit-s/ctxpatch/internal/engine"
)

const (
	beginMarker  = "*** Begin Patch"
	endMarker    = "*** End Patch"
	symbolMarker = "*** Update Symbol:"
)

// SymbolPatch is every chunk addressed to one symbol locator.
type SymbolPatch struct {
	Locator string
	Chunks  []engine.Chunk
}

type parseState struct {
	patches []SymbolPatch
	current *SymbolPatch
	chunk   *engine.Chunk
}

// Parse reads a patch envelope into per-symbol chunk lists. Line numbers in
// errors are 1-based positions in the patch text, not in any body.
func Parse(text string) ([]SymbolPatch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("patch is empty")
	}

	st := &parseState{}
	inPatch := false

	for i, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, beginMarker):
			inPatch = true
			continue
		case strings.HasPrefix(line, endMarker):
			st.finalizeSymbol()
			inPatch = false
			continue
		}

		if !inPatch {
			continue
		}

		if strings.HasPrefix(line, symbolMarker) {
			st.finalizeSymbol()
			locator := strings.TrimSpace(strings.TrimPrefix(line, symbolMarker))
			if locator == "" {
				return nil, fmt.Errorf("line %d: missing symbol locator", i+1)
			}
			st.current = &SymbolPatch{Locator: locator}
			continue
		}

		if st.current == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return nil, fmt.Errorf("line %d: content before any %q marker", i+1, symbolMarker)
		}

		if strings.HasPrefix(line, "@@") {
			st.finalizeChunk()
			continue
		}

		switch {
		case line == "":
			// Bare empty line stands for an empty context line.
			st.addContext("")
		case line[0] == ' ':
			st.addContext(line[1:])
		case line[0] == '-':
			st.addOld(line[1:])
		case line[0] == '+':
			st.addNew(line[1:])
		default:
			return nil, fmt.Errorf("line %d: unexpected line format (must start with space, -, +, or @@): %q", i+1, line)
		}
	}

	st.finalizeSymbol()

	if len(st.patches) == 0 {
		return nil, fmt.Errorf("no %q sections found in patch", symbolMarker)
	}
	return st.patches, nil
}

func (st *parseState) ensureChunk() {
	if st.chunk == nil {
		st.chunk = &engine.Chunk{}
	}
}

func (st *parseState) addContext(content string) {
	st.ensureChunk()
	if len(st.chunk.OldLines) > 0 || len(st.chunk.NewLines) > 0 {
		st.chunk.ContextAfter = append(st.chunk.ContextAfter, content)
	} else {
		st.chunk.ContextBefore = append(st.chunk.ContextBefore, content)
	}
}

func (st *parseState) addOld(content string) {
	st.splitIfAfterContext()
	st.chunk.OldLines = append(st.chunk.OldLines, content)
}

func (st *parseState) addNew(content string) {
	st.splitIfAfterContext()
	st.chunk.NewLines = append(st.chunk.NewLines, content)
}

// splitIfAfterContext starts a new chunk when an edit line follows trailing
// context. The closed chunk's trailing context doubles as the new chunk's
// leading anchor, so both edits stay locatable.
func (st *parseState) splitIfAfterContext() {
	st.ensureChunk()
	if len(st.chunk.ContextAfter) == 0 {
		return
	}
	carried := append([]string(nil), st.chunk.ContextAfter...)
	st.finalizeChunk()
	st.chunk = &engine.Chunk{ContextBefore: carried}
}

func (st *parseState) finalizeChunk() {
	if st.chunk != nil && st.current != nil && !emptyChunk(st.chunk) {
		st.current.Chunks = append(st.current.Chunks, *st.chunk)
	}
	st.chunk = nil
}

func (st *parseState) finalizeSymbol() {
	st.finalizeChunk()
	if st.current != nil {
		st.patches = append(st.patches, *st.current)
		st.current = nil
	}
}

func emptyChunk(c *engine.Chunk) bool {
	return len(c.OldLines) == 0 && len(c.NewLines) == 0
}
