// Package csvtable reads and writes the header-first CSV files exchanged
// with spreadsheet users. Reading keeps source line numbers so that row
// failures can point back into the file.
package csvtable

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one data record keyed by header column. Err is set when the
// record itself could not be parsed; Values then holds what was read.
type Row struct {
	Line   int
	Values map[string]string
	Err    error
}

// Get returns the raw value of column and whether the column was present
func (r Row) Get(column string) (string, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// Table is a parsed CSV file
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the source had no header at all
func (t *Table) Empty() bool {
	return len(t.Columns) == 0
}

// Missing returns the required columns absent from the header, in the
// order they were requested.
func (t *Table) Missing(required []string) []string {
	present := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		present[c] = struct{}{}
	}

	var missing []string
	for _, c := range required {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// Read parses r. The delimiter is ',' unless the header line contains
// ';' and no ','. Blank records are skipped and quotes inside unquoted
// fields are kept as text. A malformed header is reported as
// ErrSchemaMismatch; a malformed data record becomes a Row with Err set
// so the records around it are still returned. I/O errors are returned
// wrapped.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	comma := ','
	if line, err := peekLine(br); err == nil && strings.Contains(line, ";") && !strings.Contains(line, ",") {
		comma = ';'
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	table := &Table{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, goerr.Wrap(err, "failed to read CSV")
			}
			if table.Columns == nil {
				return nil, goerr.Wrap(model.ErrSchemaMismatch, "malformed CSV header",
					goerr.V(model.LineKey, perr.Line), goerr.V(model.CauseKey, perr.Err.Error()))
			}
			row := table.row(record)
			row.Line = perr.StartLine
			row.Err = goerr.Wrap(model.ErrCoercion, "malformed CSV record",
				goerr.V(model.LineKey, perr.StartLine), goerr.V(model.CauseKey, perr.Err.Error()))
			table.Rows = append(table.Rows, row)
			continue
		}
		if isBlank(record) {
			continue
		}

		if table.Columns == nil {
			table.Columns = make([]string, len(record))
			for i, c := range record {
				table.Columns[i] = strings.TrimSpace(c)
			}
			continue
		}

		row := table.row(record)
		row.Line, _ = cr.FieldPos(0)
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func (t *Table) row(record []string) Row {
	row := Row{Values: make(map[string]string, len(t.Columns))}
	for i, c := range t.Columns {
		if c == "" {
			continue
		}
		if i < len(record) {
			row.Values[c] = record[i]
		} else {
			row.Values[c] = ""
		}
	}
	return row
}

// Write emits a header followed by rows. Each row must have one value
// per column.
func Write(w io.Writer, columns []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return goerr.New("row width does not match header",
				goerr.V("row", i), goerr.V("want", len(columns)), goerr.V("got", len(row)))
		}
		if err := cw.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V("row", i))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}

func peekLine(br *bufio.Reader) (string, error) {
	for n := 64; ; n *= 2 {
		buf, err := br.Peek(n)
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			return string(buf[:i]), nil
		}
		if err != nil {
			// short file without newline, or buffer full
			return string(buf), nil
		}
		if n >= br.Size() {
			return string(buf), nil
		}
	}
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
