// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"fmt"
	"strings"

	"github.com/lcgenomics/clinrank/internal/table"
)

// Delimiters configures how a composite classification cell is split into a
// tier label and its supporting evidence codes.
type Delimiters struct {
	// Open starts the evidence list, Close ends it.
	Open  string
	Close string
	// ListSep separates evidence codes within the list.
	ListSep string
}

// DefaultDelimiters matches cells of the form "Likely pathogenic (PS1, PM2)".
var DefaultDelimiters = Delimiters{Open: "(", Close: ")", ListSep: ","}

// Decomposition is the tagged result of parsing a composite cell: either
// Parsed or Malformed.
type Decomposition interface {
	// TierLabel is the label downstream ranking uses; a malformed cell keeps
	// its raw content as the label so it can still be ranked.
	TierLabel() string
	// EvidenceCodes is the ordered code list; empty for malformed cells.
	EvidenceCodes() []string
}

// Parsed is a cell that carried both a tier label and an evidence list.
type Parsed struct {
	Tier     string
	Evidence []string
}

func (p Parsed) TierLabel() string       { return p.Tier }
func (p Parsed) EvidenceCodes() []string { return p.Evidence }

// Malformed is a cell with no evidence delimiter. Not an error: the raw
// cell doubles as the tier label.
type Malformed struct {
	Raw string
}

func (m Malformed) TierLabel() string       { return strings.TrimSpace(m.Raw) }
func (m Malformed) EvidenceCodes() []string { return nil }

// Decompose splits one composite classification cell. Evidence code order is
// preserved from the source; empty codes produced by stray separators are
// dropped.
func Decompose(cell string, d Delimiters) Decomposition {
	open := strings.Index(cell, d.Open)
	if open < 0 {
		return Malformed{Raw: cell}
	}
	tier := strings.TrimSpace(cell[:open])
	list := cell[open+len(d.Open):]
	if d.Close != "" {
		if end := strings.LastIndex(list, d.Close); end >= 0 {
			list = list[:end]
		}
	}
	var codes []string
	for _, code := range strings.Split(list, d.ListSep) {
		code = strings.TrimSpace(code)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return Parsed{Tier: tier, Evidence: codes}
}

// ColumnSplit configures table-level decomposition: which column holds the
// composite cell and what the two replacement columns are named.
type ColumnSplit struct {
	Source         string
	TierColumn     string
	EvidenceColumn string
}

// DecomposeTable replaces the composite column with a tier column and an
// evidence column; all other columns pass through unchanged. Rows lacking
// the composite column are counted malformed and excluded.
func DecomposeTable(t table.Table, split ColumnSplit, d Delimiters) (table.Table, int, error) {
	idx, err := t.Index(split.Source)
	if err != nil {
		return table.Table{}, 0, fmt.Errorf("decompose: %w", err)
	}
	src := idx[split.Source]

	cols := make([]string, 0, len(t.Columns)+1)
	for i, c := range t.Columns {
		if i == src {
			cols = append(cols, split.TierColumn, split.EvidenceColumn)
			continue
		}
		cols = append(cols, c)
	}
	out := t.Derive(cols)

	malformed := 0
	for _, row := range t.Rows {
		if src >= len(row.Fields) {
			malformed++
			continue
		}
		dec := Decompose(row.Fields[src], d)
		fields := make([]string, 0, len(row.Fields)+1)
		for i, f := range row.Fields {
			if i == src {
				fields = append(fields, dec.TierLabel(), strings.Join(dec.EvidenceCodes(), d.ListSep))
				continue
			}
			fields = append(fields, f)
		}
		out.Append(row.Number, fields)
	}
	return out, malformed, nil
}
