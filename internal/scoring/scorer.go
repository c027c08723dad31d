// SPDX-License-Identifier: Apache-2.0

// Package scoring provides the secondary-score policies used by the
// priority ranker. The CNV pipeline scores by the raw segment mean; the
// SNV/indel pipeline combines ClinVar category rank, conflicting-submission
// weighting, and an in-silico predictor consensus. The two conventions
// differ enough that the policy is pluggable rather than shared.
package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lcgenomics/clinrank/internal/table"
)

// Scorer computes the secondary sort key for one row. Higher scores sort
// earlier within a tier. Missing or unparseable inputs contribute zero, so
// scoring is total over every row.
type Scorer interface {
	Name() string
	// Score reads the row through the column index. tierRank is the row's
	// already-resolved tier rank, for policies that vary by tier.
	Score(row table.Row, idx map[string]int, tierRank int) float64
	// Columns lists the column names the scorer reads, for the boundary
	// schema check.
	Columns() []string
}

// SegmentMeanScorer scores CNV rows by the magnitude of the segment mean,
// so stronger copy-ratio deviations in either direction rank first.
type SegmentMeanScorer struct {
	Column string
}

func (s *SegmentMeanScorer) Name() string { return "segment-mean" }

func (s *SegmentMeanScorer) Columns() []string { return []string{s.Column} }

func (s *SegmentMeanScorer) Score(row table.Row, idx map[string]int, _ int) float64 {
	i, ok := idx[s.Column]
	if !ok || i >= len(row.Fields) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row.Fields[i]), 64)
	if err != nil {
		return 0
	}
	return math.Abs(v)
}

// New constructs the named policy. Unknown policy names are a configuration
// failure surfaced before any row is processed.
func New(policy, column string) (Scorer, error) {
	switch policy {
	case "segment-mean":
		return &SegmentMeanScorer{Column: column}, nil
	case "insilico":
		return NewInSilicoScorer(), nil
	default:
		return nil, fmt.Errorf("unknown score policy %q (want segment-mean or insilico)", policy)
	}
}
