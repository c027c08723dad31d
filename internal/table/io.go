// SPDX-License-Identifier: Apache-2.0

package table

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadOptions controls how a source stream is split into metadata and data.
type ReadOptions struct {
	// MetaLines is the number of lines preceding the column header line.
	// Segment tables from annotators carry a block of commented metadata
	// lines; multianno-style tables carry none.
	MetaLines int
}

// Read parses a tab-separated stream. The first MetaLines lines plus the
// header line are stored verbatim in Meta; every following line becomes a
// Row. Field splitting is on tabs exactly as written: upstream annotation
// tools emit bare double-quotes inside fields, which encoding/csv would
// rewrite, so no quote interpretation happens here.
func Read(r io.Reader, opts ReadOptions) (Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var t Table
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if lineNo <= opts.MetaLines {
			t.Meta = append(t.Meta, line)
			continue
		}
		if t.Columns == nil {
			t.Meta = append(t.Meta, line)
			t.Columns = strings.Split(line, "\t")
			continue
		}
		if line == "" {
			continue
		}
		t.Rows = append(t.Rows, Row{Line: line, Fields: strings.Split(line, "\t"), Number: lineNo})
	}
	if err := sc.Err(); err != nil {
		return Table{}, fmt.Errorf("reading table: %w", err)
	}
	if t.Columns == nil {
		return Table{}, fmt.Errorf("table has no header line (expected %d metadata lines before it)", opts.MetaLines)
	}
	return t, nil
}

// Write emits the table: metadata and header lines first, verbatim, then one
// line per row.
func Write(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	for _, m := range t.Meta {
		if _, err := fmt.Fprintln(bw, m); err != nil {
			return fmt.Errorf("writing table meta: %w", err)
		}
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(bw, row.Line); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return bw.Flush()
}
