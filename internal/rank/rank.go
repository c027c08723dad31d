// SPDX-License-Identifier: Apache-2.0

// Package rank produces the total, stable ordering of the consolidated
// record table for report presentation.
package rank

import (
	"fmt"
	"sort"

	"github.com/lcgenomics/clinrank/internal/classify"
	"github.com/lcgenomics/clinrank/internal/scoring"
	"github.com/lcgenomics/clinrank/internal/table"
)

// PrioritizedRecord is one row at its definite position in the ordering.
type PrioritizedRecord struct {
	Row            table.Row
	TierRank       int
	SecondaryScore float64
}

// Ranker orders rows by tier rank ascending, then secondary score
// descending. Ties keep input order: the sort is stable, so re-ranking an
// already-ranked table reproduces it exactly.
type Ranker struct {
	Vocab  *classify.Vocabulary
	Scorer scoring.Scorer
	// TierColumn holds the (possibly refined) tier label.
	TierColumn string
}

// Rank orders every row of the table. No row is dropped: tier resolution is
// total (unknown labels already rank last) and scoring is total (missing
// values score zero).
func (r *Ranker) Rank(t table.Table) (table.Table, []PrioritizedRecord, error) {
	idx, err := t.Index(r.TierColumn)
	if err != nil {
		return table.Table{}, nil, fmt.Errorf("rank: %w", err)
	}
	if cols := r.Scorer.Columns(); len(cols) > 0 {
		scoreIdx, err := t.Index(cols...)
		if err != nil {
			return table.Table{}, nil, fmt.Errorf("rank: %w", err)
		}
		for c, i := range scoreIdx {
			idx[c] = i
		}
	}
	// Optional scorer columns resolve through the full header.
	for i, c := range t.Columns {
		if _, ok := idx[c]; !ok {
			idx[c] = i
		}
	}

	records := make([]PrioritizedRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		tierRank := classify.RankOther
		if i := idx[r.TierColumn]; i < len(row.Fields) {
			tierRank = r.Vocab.Rank(row.Fields[i])
		}
		records = append(records, PrioritizedRecord{
			Row:            row,
			TierRank:       tierRank,
			SecondaryScore: r.Scorer.Score(row, idx, tierRank),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TierRank != records[j].TierRank {
			return records[i].TierRank < records[j].TierRank
		}
		return records[i].SecondaryScore > records[j].SecondaryScore
	})

	out := t.Derive(t.Columns)
	for _, rec := range records {
		out.Rows = append(out.Rows, rec.Row)
	}
	return out, records, nil
}

// TopN returns a copy of the ordered table truncated to its first n rows,
// for seeding downstream bed/HTML report generation. n past the end returns
// the table unchanged.
func TopN(t table.Table, n int) table.Table {
	if n < 0 || n >= len(t.Rows) {
		return t
	}
	out := t.Derive(t.Columns)
	out.Rows = append(out.Rows, t.Rows[:n]...)
	return out
}
