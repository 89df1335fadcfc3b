package usecase

import (
	"io"
	"sort"

	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/utils/csvtable"
)

// failureColumn carries the rejection reason. Upload ignores it, so the
// file can be corrected and uploaded again unchanged.
const failureColumn = "erro"

// WriteFailures writes the failed rows of a batch as CSV: the required
// columns first, then any other source columns, then the reason.
func WriteFailures(w io.Writer, s *model.BatchSummary) error {
	columns := RequiredColumns(s.Kind)
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		seen[c] = struct{}{}
	}

	var extra []string
	for _, f := range s.Failures {
		for c := range f.Row {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				extra = append(extra, c)
			}
		}
	}
	sort.Strings(extra)
	columns = append(columns, extra...)
	columns = append(columns, failureColumn)

	rows := make([][]string, 0, len(s.Failures))
	for _, f := range s.Failures {
		row := make([]string, len(columns))
		for i, c := range columns[:len(columns)-1] {
			row[i] = f.Row[c]
		}
		row[len(columns)-1] = f.Reason
		rows = append(rows, row)
	}

	return csvtable.Write(w, columns, rows)
}
