package patchtext

import (
	"encoding/json"
	"fmt"

	"github.com/kvit-s/ctxpatch/internal/engine"
)

// lineList unmarshals either a JSON array of strings or a single string.
// LLMs commonly emit `"context_before": "one line"` as shorthand for a
// one-element list; normalizing that here keeps it out of the engine.
type lineList []string

func (l *lineList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = []string{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or array of strings")
	}
	*l = many
	return nil
}

type jsonChunk struct {
	ContextBefore lineList `json:"context_before"`
	OldLines      lineList `json:"old_lines"`
	NewLines      lineList `json:"new_lines"`
	ContextAfter  lineList `json:"context_after"`
}

type jsonSymbolPatch struct {
	Symbol string      `json:"symbol"`
	Chunks []jsonChunk `json:"chunks"`
}

// ParseJSON reads the JSON request form: a single {"symbol", "chunks"} object
// or an array of them.
func ParseJSON(data []byte) ([]SymbolPatch, error) {
	var many []jsonSymbolPatch
	if err := json.Unmarshal(data, &many); err != nil {
		var one jsonSymbolPatch
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("invalid patch JSON: %w", err)
		}
		many = []jsonSymbolPatch{one}
	}

	patches := make([]SymbolPatch, 0, len(many))
	for i, p := range many {
		if p.Symbol == "" {
			return nil, fmt.Errorf("patch %d: missing symbol locator", i+1)
		}
		if len(p.Chunks) == 0 {
			return nil, fmt.Errorf("patch %d: no chunks for symbol %q", i+1, p.Symbol)
		}
		sp := SymbolPatch{Locator: p.Symbol}
		for _, c := range p.Chunks {
			sp.Chunks = append(sp.Chunks, engine.Chunk{
				ContextBefore: c.ContextBefore,
				OldLines:      c.OldLines,
				NewLines:      c.NewLines,
				ContextAfter:  c.ContextAfter,
			})
		}
		patches = append(patches, sp)
	}
	return patches, nil
}
