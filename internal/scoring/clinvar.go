// SPDX-License-Identifier: Apache-2.0

package scoring

import "strings"

// clinvarUnknownRank is assigned to empty, missing, or unrecognized ClinVar
// categories.
const clinvarUnknownRank = 6

// clinvarRanks orders ClinVar significance categories for secondary
// prioritization. Lower ranks sort earlier. The vocabulary covers the
// compound categories ClinVar emits verbatim, including the escaped
// low-penetrance spellings.
var clinvarRanks = map[string]int{
	"Pathogenic":                                      1,
	"Pathogenic/Likely_pathogenic":                    1,
	"Pathogenic/Likely_pathogenic/Likely_risk_allele": 1,
	"Pathogenic/Likely_pathogenic/Pathogenic\\x2c_low_penetrance": 1,
	"Pathogenic/Likely_risk_allele":                               1,
	"Pathogenic/Pathogenic\\x2c_low_penetrance":                   1,

	"Likely_pathogenic":                     2,
	"Likely_pathogenic/Likely_risk_allele":  2,
	"Likely_pathogenic\\x2c_low_penetrance": 2,
	"Likely_risk_allele":                    2,

	"Conflicting_classifications_of_pathogenicity": 3,

	"Uncertain_significance":                       4,
	"Uncertain_significance/Uncertain_risk_allele": 4,
	"Uncertain_risk_allele":                        4,

	"Affects":             5,
	"association":         5,
	"drug_response":       5,
	"confers_sensitivity": 5,
	"risk_factor":         5,
	"protective":          5,

	"not_provided": 6,
	"no_classification_for_the_single_variant": 6,
	"no_classifications_from_unflagged_records": 6,
	"other": 6,
	"UNK":   6,

	"Likely_benign":        7,
	"Benign/Likely_benign": 7,

	"Benign": 8,
}

// ClinvarRank resolves a ClinVar cell to its rank. Pipe-separated
// multi-label cells take the best (minimum) rank among recognized labels.
func ClinvarRank(cell string) int {
	s := strings.TrimSpace(strings.TrimPrefix(cell, "clinvar:"))
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return clinvarUnknownRank
	}
	if strings.Contains(s, "|") {
		best := 0
		for _, part := range strings.Split(s, "|") {
			if rank, ok := clinvarRanks[strings.TrimSpace(part)]; ok {
				if best == 0 || rank < best {
					best = rank
				}
			}
		}
		if best == 0 {
			return clinvarUnknownRank
		}
		return best
	}
	if rank, ok := clinvarRanks[s]; ok {
		return rank
	}
	return clinvarUnknownRank
}
