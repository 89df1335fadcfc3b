package model

import "github.com/secmon-lab/auditai/pkg/domain/types"

// BatchSummary reports the outcome of one CSV ingestion
type BatchSummary struct {
	Kind      types.EntityKind `json:"kind"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	// Skipped counts rows never submitted because the batch was interrupted
	Skipped     int          `json:"skipped"`
	Interrupted bool         `json:"interrupted"`
	Failures    []RowFailure `json:"failures"`
}

// RowFailure keeps a failed row and why it failed, so the operator can
// re-upload only the failed rows.
type RowFailure struct {
	Line   int               `json:"line"`
	Row    map[string]string `json:"row"`
	Kind   string            `json:"kind"`
	Reason string            `json:"reason"`
	Detail string            `json:"detail,omitempty"`
}

// Total returns the number of rows seen by the pipeline
func (s *BatchSummary) Total() int {
	return s.Succeeded + s.Failed + s.Skipped
}

// AddFailure records a failed row
func (s *BatchSummary) AddFailure(line int, row map[string]string, err error) {
	s.Failed++
	s.Failures = append(s.Failures, RowFailure{
		Line:   line,
		Row:    row,
		Kind:   KindOf(err),
		Reason: err.Error(),
		Detail: DetailOf(err),
	})
}
