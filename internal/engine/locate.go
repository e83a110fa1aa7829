package engine

// findCandidates scans every window of len(contextBefore) lines in the
// original body and returns the position (index of the last context line)
// of each match, in ascending order. Repeated context is legitimate
// (boilerplate); disambiguation is validation's job, not the locator's.
func findCandidates(originalLines, contextBefore []string) ([]int, *PatchError) {
	if len(contextBefore) == 0 {
		return nil, notFoundError(contextBefore)
	}

	var positions []int
	for i := 0; i+len(contextBefore) <= len(originalLines); i++ {
		if linesMatch(originalLines[i:i+len(contextBefore)], contextBefore) {
			positions = append(positions, i+len(contextBefore)-1)
		}
	}
	if len(positions) == 0 {
		return nil, notFoundError(contextBefore)
	}
	return positions, nil
}
