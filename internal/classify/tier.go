// SPDX-License-Identifier: Apache-2.0

// Package classify handles pathogenicity classification cells: the closed
// tier vocabulary, decomposition of composite classification strings, and
// sub-tier refinement of uncertain calls.
package classify

import (
	"log/slog"
	"sort"
	"strings"
)

// Ranks of the closed tier vocabulary. Rank 1 sorts first in reports.
const (
	RankPathogenic       = 1
	RankLikelyPathogenic = 2
	RankUncertain        = 3
	RankLikelyBenign     = 4
	RankBenign           = 5
	RankOther            = 6
)

// TierUncertain is the ambiguous tier label subject to sub-tier refinement.
const TierUncertain = "Uncertain significance"

// DefaultTiers is the tier-to-rank table used when a profile does not
// override it.
var DefaultTiers = map[string]int{
	"Pathogenic":        RankPathogenic,
	"Likely pathogenic": RankLikelyPathogenic,
	TierUncertain:       RankUncertain,
	"Likely benign":     RankLikelyBenign,
	"Benign":            RankBenign,
	"Other":             RankOther,
}

// Vocabulary maps tier labels to integer ranks. Lookup is total: labels
// outside the vocabulary resolve to RankOther and are logged once per
// distinct value so a flood of identical unknowns cannot drown the log.
type Vocabulary struct {
	ranks map[string]int
	// SubLabelSep, when non-empty, is stripped with everything after it
	// before lookup so that refined labels keep their base tier's rank.
	SubLabelSep string

	log         *slog.Logger
	seenUnknown map[string]bool
}

// NewVocabulary builds a Vocabulary over the given rank table, keyed
// case-insensitively. A nil table selects DefaultTiers.
func NewVocabulary(ranks map[string]int, log *slog.Logger) *Vocabulary {
	if ranks == nil {
		ranks = DefaultTiers
	}
	if log == nil {
		log = slog.Default()
	}
	folded := make(map[string]int, len(ranks))
	for label, rank := range ranks {
		folded[strings.ToLower(label)] = rank
	}
	return &Vocabulary{
		ranks:       folded,
		SubLabelSep: DefaultSubLabelSep,
		log:         log,
		seenUnknown: make(map[string]bool),
	}
}

// Rank resolves a tier label to its rank.
func (v *Vocabulary) Rank(label string) int {
	base := strings.TrimSpace(label)
	if v.SubLabelSep != "" {
		if i := strings.Index(base, v.SubLabelSep); i >= 0 {
			base = strings.TrimSpace(base[:i])
		}
	}
	if rank, ok := v.ranks[strings.ToLower(base)]; ok {
		return rank
	}
	if !v.seenUnknown[label] {
		v.seenUnknown[label] = true
		v.log.Warn("unknown tier label, ranking last", "label", label, "rank", RankOther)
	}
	return RankOther
}

// UnknownLabels returns the distinct labels that fell outside the
// vocabulary, sorted so the run summary is reproducible across runs.
func (v *Vocabulary) UnknownLabels() []string {
	labels := make([]string, 0, len(v.seenUnknown))
	for l := range v.seenUnknown {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
