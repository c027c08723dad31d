// SPDX-License-Identifier: Apache-2.0

package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lcgenomics/clinrank/internal/table"
)

// clnsigconfPattern matches one "Label(count)" group in a conflicting-
// submissions cell such as "Pathogenic(1)|Benign(10)|Likely_benign(2)".
var clnsigconfPattern = regexp.MustCompile(`([^(|]+)\((\d+)\)`)

// clnsigconfWeights weights each submission label; negative pulls a variant
// toward the top of its tier. Unrecognized labels weigh zero.
var clnsigconfWeights = map[string]float64{
	"Pathogenic":                     -10,
	"Likely_pathogenic":              -8,
	"Pathogenic\\x2c_low_penetrance": -7,
	"Likely_risk_allele":             -6,
	"Uncertain_significance":         0,
	"Uncertain_risk_allele":          0,
	"Likely_benign":                  5,
	"Benign":                         8,
}

// ClnsigconfScore computes the submission-count-weighted score of a
// CLNSIGCONF cell, normalized by total submissions. Empty or unparseable
// cells score zero.
func ClnsigconfScore(cell string) float64 {
	matches := clnsigconfPattern.FindAllStringSubmatch(cell, -1)
	if len(matches) == 0 {
		return 0
	}
	var score, total float64
	for _, m := range matches {
		count, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		total += count
		score += clnsigconfWeights[strings.TrimSpace(m[1])] * count
	}
	if total == 0 {
		return 0
	}
	return score / total
}

// InSilicoScorer implements the SNV/indel secondary-score policy: a strict
// hierarchy of ClinVar category rank, CLNSIGCONF weighting, and an averaged
// in-silico predictor consensus. Component weights keep the hierarchy
// strict: no amount of in-silico signal can outrank a ClinVar category.
//
// The returned score is negated so that "more deleterious" is larger, since
// the ranker sorts the secondary key descending.
type InSilicoScorer struct {
	ClinvarColumn    string
	ClnsigconfColumn string
	CADDColumn       string
	SIFTColumn       string
	GERPColumn       string
	PhyloPColumn     string
	MetaSVMColumn    string
}

// NewInSilicoScorer returns the scorer with the standard multianno column
// names.
func NewInSilicoScorer() *InSilicoScorer {
	return &InSilicoScorer{
		ClinvarColumn:    "clinvar: Clinvar ",
		ClnsigconfColumn: "CLNSIGCONF",
		CADDColumn:       "CADD_phred",
		SIFTColumn:       "SIFT_score",
		GERPColumn:       "GERP++_RS",
		PhyloPColumn:     "phyloP46way_placental",
		MetaSVMColumn:    "MetaSVM_score",
	}
}

func (s *InSilicoScorer) Name() string { return "insilico" }

// Columns returns only the columns the policy cannot work without; the
// individual predictor columns are optional and contribute nothing when
// absent.
func (s *InSilicoScorer) Columns() []string { return nil }

func (s *InSilicoScorer) Score(row table.Row, idx map[string]int, tierRank int) float64 {
	clinvar := float64(ClinvarRank(field(row, idx, s.ClinvarColumn)))
	// A Pathogenic or Likely pathogenic tier call stands on its own
	// evidence; ClinVar disagreement must not reorder those rows.
	if tierRank <= 2 {
		clinvar = 0
	}
	conf := ClnsigconfScore(field(row, idx, s.ClnsigconfColumn))
	insilico := s.consensus(row, idx)
	return -(clinvar*10000 + conf*100 + insilico)
}

// consensus averages the per-predictor votes that could be read from the
// row. Deleterious calls vote negative.
func (s *InSilicoScorer) consensus(row table.Row, idx map[string]int) float64 {
	var score float64
	count := 0

	if cadd, ok := numeric(row, idx, s.CADDColumn); ok {
		switch {
		case cadd >= 25:
			score -= 2
		case cadd >= 20:
			score -= 1
		}
		count++
	}
	if sift, ok := numeric(row, idx, s.SIFTColumn); ok {
		if sift < 0.05 {
			score--
		}
		count++
	}
	if gerp, ok := numeric(row, idx, s.GERPColumn); ok {
		if gerp > 4.4 {
			score--
		}
		count++
	}
	if phylop, ok := numeric(row, idx, s.PhyloPColumn); ok {
		if phylop > 2.0 {
			score--
		}
		count++
	}
	if metasvm := strings.TrimSpace(field(row, idx, s.MetaSVMColumn)); metasvm != "" && metasvm != "." {
		if strings.Contains(metasvm, "D") {
			score--
		} else if strings.Contains(metasvm, "T") {
			score++
		}
		count++
	}

	if count == 0 {
		return 0
	}
	return score / float64(count)
}

func field(row table.Row, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row.Fields) {
		return ""
	}
	return row.Fields[i]
}

func numeric(row table.Row, idx map[string]int, col string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field(row, idx, col)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
