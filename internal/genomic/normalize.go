// SPDX-License-Identifier: Apache-2.0

package genomic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lcgenomics/clinrank/internal/table"
)

// DefaultSymbols is the closed call-symbol table used when a profile does
// not override it. Symbols outside the table pass through unchanged so that
// future segmenter vocabularies do not require a code change.
var DefaultSymbols = map[string]string{
	"+": TypeDup,
	"-": TypeDel,
}

// Normalizer converts raw segmentation rows into canonical Records.
type Normalizer struct {
	// Symbols maps segmenter call symbols to record types.
	Symbols map[string]string
	// RatioCutoff drops segments whose absolute numeric value is below the
	// cutoff before normalization. Zero disables the prefilter.
	RatioCutoff float64
}

// NewNormalizer creates a Normalizer with the default symbol table.
func NewNormalizer() *Normalizer {
	return &Normalizer{Symbols: DefaultSymbols}
}

// MapSymbol resolves a call symbol to its record type. Unknown symbols are
// returned unchanged.
func (n *Normalizer) MapSymbol(sym string) string {
	if mapped, ok := n.Symbols[sym]; ok {
		return mapped
	}
	return sym
}

// Normalize converts one raw segmentation row (chrom, start, end, symbol,
// value) into a Record. It returns false when the row must be dropped: a
// zero or negative interval length, or a value under the ratio cutoff.
// Zero-length intervals are expected segmenter noise, not errors.
func (n *Normalizer) Normalize(chrom string, start, end int64, sym string, value float64) (Record, bool) {
	if end <= start {
		return Record{}, false
	}
	if n.RatioCutoff > 0 && math.Abs(value) < n.RatioCutoff {
		return Record{}, false
	}
	return Record{
		Chrom: chrom,
		Start: start,
		End:   end,
		Type:  n.MapSymbol(sym),
		Value: value,
	}, true
}

// NormalizeTable applies Normalize to every data row of a raw segmentation
// table laid out as (chrom, start, end, symbol, value, ...). Metadata and
// header lines pass through verbatim with their original column count.
// Rows with unparseable coordinates are counted as malformed and excluded.
func (n *Normalizer) NormalizeTable(t table.Table) (table.Table, int, error) {
	if len(t.Columns) < 5 {
		return table.Table{}, 0, fmt.Errorf("segmentation table needs at least 5 columns, got %d", len(t.Columns))
	}
	out := table.Table{Meta: t.Meta, Columns: t.Columns}
	malformed := 0
	for _, row := range t.Rows {
		if len(row.Fields) < 5 {
			malformed++
			continue
		}
		start, err := strconv.ParseInt(strings.TrimSpace(row.Fields[1]), 10, 64)
		if err != nil {
			malformed++
			continue
		}
		end, err := strconv.ParseInt(strings.TrimSpace(row.Fields[2]), 10, 64)
		if err != nil {
			malformed++
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row.Fields[4]), 64)
		if err != nil {
			malformed++
			continue
		}
		rec, ok := n.Normalize(row.Fields[0], start, end, row.Fields[3], value)
		if !ok {
			continue
		}
		fields := append([]string(nil), row.Fields...)
		fields[3] = rec.Type
		out.Rows = append(out.Rows, table.NewRow(row.Number, fields))
	}
	return out, malformed, nil
}
