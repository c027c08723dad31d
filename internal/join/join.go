// SPDX-License-Identifier: Apache-2.0

// Package join matches rows of the primary (classification-bearing)
// annotation table against the secondary field-extraction table by the
// original input coordinate tuple.
//
// The secondary table carries the pre-normalization coordinates as explicit
// columns because the annotation tool may rewrite positions; keying on those
// columns instead of the reported coordinates guards against silent
// coordinate drift.
package join

import (
	"fmt"
	"log/slog"

	"github.com/lcgenomics/clinrank/internal/table"
)

// Key is the coordinate tuple used to match rows across the two tables.
// CNV tables key on the three coordinate fields with Ref and Alt left empty.
type Key struct {
	Chrom string
	Start string
	End   string
	Ref   string
	Alt   string
}

func (k Key) String() string {
	if k.Ref == "" && k.Alt == "" {
		return fmt.Sprintf("%s:%s-%s", k.Chrom, k.Start, k.End)
	}
	return fmt.Sprintf("%s:%s-%s %s>%s", k.Chrom, k.Start, k.End, k.Ref, k.Alt)
}

// Config names the key columns in each table. Ref and Alt column names may
// be empty for coordinate-only (CNV) joins, but the two sides must declare
// the same number of key fields.
type Config struct {
	PrimaryKey   []string
	SecondaryKey []string
}

// Result partitions the primary table's rows. Every primary row lands in
// exactly one of Matched or Unmatched; Malformed counts rows excluded from
// both for missing key fields.
type Result struct {
	// Matched has one row per joined pair with the primary columns followed
	// by the secondary columns.
	Matched table.Table
	// Unmatched holds primary rows with no secondary match, byte-identical
	// to their source lines.
	Unmatched table.Table
	// DuplicateKeys counts secondary rows discarded because an earlier row
	// already claimed their key.
	DuplicateKeys int
	// Malformed counts primary rows too short to carry the key tuple.
	Malformed int
}

// Joiner performs the keyed 1:1 join.
type Joiner struct {
	cfg Config
	log *slog.Logger
}

// New validates the key configuration and returns a Joiner. An empty or
// mismatched key column list is a configuration failure.
func New(cfg Config, log *slog.Logger) (*Joiner, error) {
	if len(cfg.PrimaryKey) == 0 || len(cfg.SecondaryKey) == 0 {
		return nil, fmt.Errorf("join key columns not configured")
	}
	if len(cfg.PrimaryKey) != len(cfg.SecondaryKey) {
		return nil, fmt.Errorf("join key width mismatch: primary has %d columns, secondary has %d",
			len(cfg.PrimaryKey), len(cfg.SecondaryKey))
	}
	if len(cfg.PrimaryKey) != 3 && len(cfg.PrimaryKey) != 5 {
		return nil, fmt.Errorf("join key must be 3 (chrom,start,end) or 5 (chrom,start,end,ref,alt) columns, got %d", len(cfg.PrimaryKey))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Joiner{cfg: cfg, log: log}, nil
}

// Join matches every primary row against the secondary index. The output
// accounts for each primary row exactly once: matched, unmatched, or counted
// malformed.
func (j *Joiner) Join(primary, secondary table.Table) (Result, error) {
	pIdx, err := primary.Index(j.cfg.PrimaryKey...)
	if err != nil {
		return Result{}, fmt.Errorf("primary table: %w", err)
	}
	sIdx, err := secondary.Index(j.cfg.SecondaryKey...)
	if err != nil {
		return Result{}, fmt.Errorf("secondary table: %w", err)
	}

	res := Result{}
	index := make(map[Key]table.Row, len(secondary.Rows))
	for _, row := range secondary.Rows {
		if !row.Complete(sIdx) {
			continue
		}
		k := keyOf(row, j.cfg.SecondaryKey, sIdx)
		if _, seen := index[k]; seen {
			// First row wins; stable input order makes this deterministic.
			res.DuplicateKeys++
			j.log.Warn("duplicate join key in secondary table, keeping first", "key", k.String(), "line", row.Number)
			continue
		}
		index[k] = row
	}

	cols := make([]string, 0, len(primary.Columns)+len(secondary.Columns))
	cols = append(cols, primary.Columns...)
	cols = append(cols, secondary.Columns...)
	res.Matched = primary.Derive(cols)
	res.Unmatched = primary.Derive(primary.Columns)

	for _, row := range primary.Rows {
		if !row.Complete(pIdx) {
			res.Malformed++
			j.log.Warn("primary row missing key fields, excluded", "line", row.Number)
			continue
		}
		k := keyOf(row, j.cfg.PrimaryKey, pIdx)
		sRow, ok := index[k]
		if !ok {
			// Not an error: route for human triage, bytes untouched.
			res.Unmatched.Rows = append(res.Unmatched.Rows, row)
			continue
		}
		fields := make([]string, 0, len(row.Fields)+len(sRow.Fields))
		fields = append(fields, row.Fields...)
		fields = append(fields, sRow.Fields...)
		res.Matched.Append(row.Number, fields)
	}
	return res, nil
}

func keyOf(row table.Row, cols []string, idx map[string]int) Key {
	k := Key{
		Chrom: row.Fields[idx[cols[0]]],
		Start: row.Fields[idx[cols[1]]],
		End:   row.Fields[idx[cols[2]]],
	}
	if len(cols) == 5 {
		k.Ref = row.Fields[idx[cols[3]]]
		k.Alt = row.Fields[idx[cols[4]]]
	}
	return k
}
