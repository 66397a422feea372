package models

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is the only fatal condition for a single document: the
// bytes are neither a recognizable PDS spreadsheet nor parseable text.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrOverrideNotFound is returned when a reset is requested for a criterion
// that has no active override.
var ErrOverrideNotFound = errors.New("no active override for criterion")

// DiagnosticCode enumerates the non-fatal conditions an extraction or scoring
// pass can surface alongside its (possibly partial) result.
type DiagnosticCode string

const (
	DiagSectionNotFound      DiagnosticCode = "section_not_found"
	DiagFieldExtraction      DiagnosticCode = "field_extraction"
	DiagInvalidEntryRejected DiagnosticCode = "invalid_entry_rejected"
	DiagEmbeddingUnavailable DiagnosticCode = "embedding_unavailable"
)

// Diagnostic is one structured warning attached to an extraction result.
// Diagnostics are data, not errors: they never abort the pipeline.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Section string         `json:"section,omitempty"`
	Field   string         `json:"field,omitempty"`
	Detail  string         `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	s := string(d.Code)
	if d.Section != "" {
		s += " section=" + d.Section
	}
	if d.Field != "" {
		s += " field=" + d.Field
	}
	if d.Detail != "" {
		s += ": " + d.Detail
	}
	return s
}

// Confidence is a coarse indicator of how complete an extraction was.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ExtractionResult pairs the canonical profile with everything that went wrong
// while building it. Profile is never nil on a non-fatal extraction, though it
// may be sparsely populated.
type ExtractionResult struct {
	Profile     *CandidateProfile `json:"profile"`
	Diagnostics []Diagnostic      `json:"diagnostics"`
	Confidence  Confidence        `json:"confidence"`
}

// Warn appends a diagnostic.
func (r *ExtractionResult) Warn(code DiagnosticCode, section, field, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Code:    code,
		Section: section,
		Field:   field,
		Detail:  fmt.Sprintf(format, args...),
	})
}

// CountCode returns how many diagnostics carry the given code.
func (r *ExtractionResult) CountCode(code DiagnosticCode) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}
