package engine

import "testing"

func lfBody(lines ...string) *Body {
	return &Body{Lines: lines, Ending: LF, TrailingNewline: true}
}

func TestCertifyChecks(t *testing.T) {
	tests := []struct {
		name      string
		body      *Body
		chunk     Chunk
		position  int
		wantCheck Check // 0 = certifies
	}{
		{
			name: "pure replacement certifies",
			body: lfBody("def f():", "    x = 1", "    return x"),
			chunk: Chunk{
				ContextBefore: []string{"def f():"},
				OldLines:      []string{"    x = 1"},
				NewLines:      []string{"    x = 2"},
				ContextAfter:  []string{"    return x"},
			},
			position: 0,
		},
		{
			name: "context_after mismatch",
			body: lfBody("a", "b", "c"),
			chunk: Chunk{
				ContextBefore: []string{"a"},
				OldLines:      []string{"b"},
				NewLines:      []string{"B"},
				ContextAfter:  []string{"wrong"},
			},
			position:  0,
			wantCheck: CheckContextAfter,
		},
		{
			name: "context_after out of bounds",
			body: lfBody("a", "b"),
			chunk: Chunk{
				ContextBefore: []string{"a"},
				OldLines:      []string{"b"},
				NewLines:      []string{"B"},
				ContextAfter:  []string{"c"},
			},
			position:  0,
			wantCheck: CheckContextAfter,
		},
		{
			name: "old_lines mismatch",
			body: lfBody("a", "b", "c"),
			chunk: Chunk{
				ContextBefore: []string{"a"},
				OldLines:      []string{"not b"},
				NewLines:      []string{"B"},
				ContextAfter:  []string{"c"},
			},
			position:  0,
			wantCheck: CheckOldLines,
		},
		{
			name: "old_lines differ only by leading indentation",
			body: lfBody("def f():", "    x = 1", "    return x"),
			chunk: Chunk{
				ContextBefore: []string{"def f():"},
				OldLines:      []string{"  x = 1"},
				NewLines:      []string{"    x = 2"},
				ContextAfter:  []string{"    return x"},
			},
			position:  0,
			wantCheck: CheckOldLines,
		},
		{
			name: "old_lines differ only by trailing whitespace certifies",
			body: lfBody("def f():", "    x = 1   ", "    return x"),
			chunk: Chunk{
				ContextBefore: []string{"def f():"},
				OldLines:      []string{"    x = 1"},
				NewLines:      []string{"    x = 2"},
				ContextAfter:  []string{"    return x"},
			},
			position: 0,
		},
		{
			name: "pure insertion certifies",
			body: lfBody("a", "b"),
			chunk: Chunk{
				ContextBefore: []string{"a"},
				NewLines:      []string{"mid"},
				ContextAfter:  []string{"b"},
			},
			position: 0,
		},
		{
			name: "insertion with gap before context_after",
			body: lfBody("a", "b", "c"),
			chunk: Chunk{
				ContextBefore: []string{"a"},
				NewLines:      []string{"mid"},
				ContextAfter:  []string{"c"},
			},
			position:  0,
			wantCheck: CheckInsertionPoint,
		},
		{
			name: "deletion exact match certifies",
			body: lfBody("a", "    debug_print(x)", "b"),
			chunk: Chunk{
				ContextBefore: []string{"a"},
				OldLines:      []string{"    debug_print(x)"},
				ContextAfter:  []string{"b"},
			},
			position: 0,
		},
		{
			name: "deletion with whitespace drift rejected",
			body: lfBody("a", "    debug_print(x) ", "b"),
			chunk: Chunk{
				ContextBefore: []string{"a"},
				OldLines:      []string{"    debug_print(x)"},
				ContextAfter:  []string{"b"},
			},
			position:  0,
			wantCheck: CheckDeletionExact,
		},
		{
			name: "empty context_after at end of body certifies",
			body: lfBody("a", "b", "c"),
			chunk: Chunk{
				ContextBefore: []string{"b"},
				OldLines:      []string{"c"},
				NewLines:      []string{"C"},
			},
			position: 1,
		},
		{
			name: "empty context_after with lines remaining rejected",
			body: lfBody("a", "b", "c", "d"),
			chunk: Chunk{
				ContextBefore: []string{"a"},
				OldLines:      []string{"b"},
				NewLines:      []string{"B"},
			},
			position:  0,
			wantCheck: CheckEndOfBody,
		},
		{
			name: "embedded lf terminator in crlf body rejected",
			body: &Body{Lines: []string{"a", "b", "c"}, Ending: CRLF, TrailingNewline: true},
			chunk: Chunk{
				ContextBefore: []string{"a"},
				OldLines:      []string{"b"},
				NewLines:      []string{"x\ny"},
				ContextAfter:  []string{"c"},
			},
			position:  0,
			wantCheck: CheckLineEnding,
		},
		{
			name: "embedded crlf terminator in crlf body tolerated",
			body: &Body{Lines: []string{"a", "b", "c"}, Ending: CRLF, TrailingNewline: true},
			chunk: Chunk{
				ContextBefore: []string{"a"},
				OldLines:      []string{"b"},
				NewLines:      []string{"x\r\ny"},
				ContextAfter:  []string{"c"},
			},
			position: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := certify(tt.body.Lines, tt.chunk, tt.position, tt.body)
			if tt.wantCheck == 0 {
				if perr != nil {
					t.Fatalf("certify() = %v, want certified", perr)
				}
				return
			}
			if perr == nil {
				t.Fatal("certify() passed, want failure")
			}
			if perr.Class != FailCheck {
				t.Fatalf("error class = %s, want validation_failed", perr.Class)
			}
			if perr.Check != tt.wantCheck {
				t.Errorf("failed check = %s, want %s", perr.Check, tt.wantCheck)
			}
		})
	}
}

func TestLocateAmbiguousContextResolvedByOldLines(t *testing.T) {
	body := lfBody(
		"# start",
		"alpha",
		"tail",
		"# start",
		"beta",
		"tail",
	)
	chunk := Chunk{
		ContextBefore: []string{"# start"},
		OldLines:      []string{"beta"},
		NewLines:      []string{"gamma"},
		ContextAfter:  []string{"tail"},
	}

	pos, perr := locate(body.Lines, body, chunk)
	if perr != nil {
		t.Fatalf("locate() error: %v", perr)
	}
	if pos != 3 {
		t.Errorf("locate() = %d, want 3 (the second occurrence)", pos)
	}
}

func TestLocateFirstCertifyingCandidateWins(t *testing.T) {
	body := lfBody("dup", "x", "dup", "x")
	chunk := Chunk{
		ContextBefore: []string{"dup"},
		OldLines:      []string{"x"},
		NewLines:      []string{"y"},
		ContextAfter:  []string{"dup"},
	}

	// Both occurrences match context_before; only the first has "dup"
	// following the edit region.
	pos, perr := locate(body.Lines, body, chunk)
	if perr != nil {
		t.Fatalf("locate() error: %v", perr)
	}
	if pos != 0 {
		t.Errorf("locate() = %d, want 0", pos)
	}
}

func TestLocateNoCandidateCertifies(t *testing.T) {
	body := lfBody("# start", "alpha", "# start", "beta")
	chunk := Chunk{
		ContextBefore: []string{"# start"},
		OldLines:      []string{"gamma"},
		NewLines:      []string{"delta"},
		ContextAfter:  nil,
	}

	_, perr := locate(body.Lines, body, chunk)
	if perr == nil {
		t.Fatal("locate() should fail when no candidate certifies")
	}
	if perr.Class != FailAmbiguous {
		t.Fatalf("error class = %s, want no_candidate_certified", perr.Class)
	}
	if tried, ok := perr.Details["candidates_tried"].(int); !ok || tried != 2 {
		t.Errorf("candidates_tried = %v, want 2", perr.Details["candidates_tried"])
	}
}
