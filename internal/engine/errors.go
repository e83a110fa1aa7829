package engine

import (
	"encoding/json"
	"fmt"
)

// FailureClass classifies patch failures for callers that need to decide
// whether resubmitting corrected chunks can help.
type FailureClass int

const (
	// FailMalformed - a chunk is structurally invalid (e.g. empty
	// context_before); rejected before any positional search.
	FailMalformed FailureClass = iota

	// FailNotFound - context_before matches nowhere in the body.
	FailNotFound

	// FailAmbiguous - context_before matched somewhere, but no candidate
	// position passed all validation checks.
	FailAmbiguous

	// FailCheck - a specific validation check failed for the candidate
	// considered; Check names it.
	FailCheck

	// FailOverlap - two certified chunks claim intersecting edit regions.
	FailOverlap

	// FailInternal - an engine invariant was violated. Never expected.
	FailInternal
)

func (c FailureClass) String() string {
	switch c {
	case FailMalformed:
		return "malformed_request"
	case FailNotFound:
		return "context_not_found"
	case FailAmbiguous:
		return "no_candidate_certified"
	case FailCheck:
		return "validation_failed"
	case FailOverlap:
		return "overlapping_chunks"
	default:
		return "internal_error"
	}
}

// PatchError is a structured patch failure. ChunkIndex is 1-based and set by
// the engine once the failure is attributed to a chunk of the request.
type PatchError struct {
	Class      FailureClass
	Check      Check // set when Class is FailCheck
	ChunkIndex int   // 1-based; 0 when not attributed to a chunk
	Message    string
	Details    map[string]any // optional structured data for the caller
}

// Error implements the error interface
func (e *PatchError) Error() string {
	if e.ChunkIndex > 0 {
		return fmt.Sprintf("chunk %d: %s", e.ChunkIndex, e.Message)
	}
	return e.Message
}

// ToJSON returns the structured form surfaced to tool callers.
func (e *PatchError) ToJSON() map[string]any {
	result := map[string]any{
		"ok":     false,
		"error":  e.Class.String(),
		"reason": e.Message,
	}
	if e.ChunkIndex > 0 {
		result["failing_chunk_index"] = e.ChunkIndex
	}
	if e.Class == FailCheck {
		result["failed_check"] = e.Check.String()
	}
	for k, v := range e.Details {
		result[k] = v
	}
	return result
}

// FormatPatchError renders a PatchError as indented JSON when it carries
// structured details, plain text otherwise.
func FormatPatchError(err *PatchError) string {
	if err == nil {
		return ""
	}
	if len(err.Details) > 0 {
		if data, marshalErr := json.MarshalIndent(err.ToJSON(), "", "  "); marshalErr == nil {
			return string(data)
		}
	}
	return err.Error()
}

func malformedErrorf(format string, args ...any) *PatchError {
	return &PatchError{Class: FailMalformed, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(contextBefore []string) *PatchError {
	return &PatchError{
		Class:   FailNotFound,
		Message: "context not found in body",
		Details: map[string]any{"context_before": contextBefore},
	}
}

func checkErrorf(check Check, format string, args ...any) *PatchError {
	return &PatchError{Class: FailCheck, Check: check, Message: fmt.Sprintf(format, args...)}
}

func internalErrorf(format string, args ...any) *PatchError {
	return &PatchError{Class: FailInternal, Message: fmt.Sprintf(format, args...)}
}
