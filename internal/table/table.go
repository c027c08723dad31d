// SPDX-License-Identifier: Apache-2.0

// Package table models the tab-separated annotation tables exchanged between
// pipeline stages. Rows keep their raw source line so that passthrough stages
// (header emission, unmatched routing) reproduce input bytes exactly.
package table

import (
	"fmt"
	"strings"
)

// Row is one data row of a table.
type Row struct {
	// Line is the raw source line, tabs and all.
	Line string
	// Fields is Line split on tabs.
	Fields []string
	// Number is the 1-based line number in the source file.
	Number int
}

// NewRow builds a Row from fields, synthesizing the raw line.
func NewRow(number int, fields []string) Row {
	return Row{
		Line:   strings.Join(fields, "\t"),
		Fields: fields,
		Number: number,
	}
}

// Table is an in-memory tab-separated table. Meta holds every line that
// precedes the data rows verbatim, including the column header line itself,
// which is always the last Meta entry.
type Table struct {
	Meta    []string
	Columns []string
	Rows    []Row
}

// Index resolves column names to field positions. A missing required column
// is a configuration-level failure: the table cannot be processed at all.
func (t *Table) Index(cols ...string) (map[string]int, error) {
	pos := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		pos[c] = i
	}
	idx := make(map[string]int, len(cols))
	for _, c := range cols {
		i, ok := pos[c]
		if !ok {
			return nil, fmt.Errorf("required column %q not found in header (have %d columns)", c, len(t.Columns))
		}
		idx[c] = i
	}
	return idx, nil
}

// Complete reports whether the row carries enough fields to cover every
// position in idx. Rows that fall short are malformed and must be excluded.
func (r Row) Complete(idx map[string]int) bool {
	for _, i := range idx {
		if i >= len(r.Fields) {
			return false
		}
	}
	return true
}

// Derive returns a copy of t with the given columns and no rows, keeping all
// Meta lines except the header line, which is rebuilt from the new columns.
func (t *Table) Derive(columns []string) Table {
	meta := make([]string, 0, len(t.Meta))
	if len(t.Meta) > 0 {
		meta = append(meta, t.Meta[:len(t.Meta)-1]...)
	}
	meta = append(meta, strings.Join(columns, "\t"))
	return Table{Meta: meta, Columns: columns}
}

// Append adds a data row built from fields.
func (t *Table) Append(number int, fields []string) {
	t.Rows = append(t.Rows, NewRow(number, fields))
}
