// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lcgenomics/clinrank/internal/table"
)

// DefaultSubLabelSep joins a base tier label to its sub-label.
const DefaultSubLabelSep = " - "

// Rule is one sub-tier refinement rule. A rule fires when every configured
// condition holds: at least one listed evidence code is present (when
// Evidence is non-empty) and the named numeric field satisfies the bounds
// (when Field is set). Rules are evaluated in order; the first match wins.
type Rule struct {
	SubLabel string   `yaml:"sublabel"`
	Evidence []string `yaml:"evidence"`
	Field    string   `yaml:"field"`
	Above    *float64 `yaml:"above"`
	Below    *float64 `yaml:"below"`
}

// DefaultRules splits uncertain calls into hot/warm buckets on strong and
// moderate pathogenicity criteria, falling back to a CADD-based split. The
// set mirrors the VUS H/M/C convention used in germline triage.
var DefaultRules = []Rule{
	{SubLabel: "hot", Evidence: []string{"PS1", "PS2", "PS3", "PS4", "PVS1"}},
	{SubLabel: "hot", Field: "CADD_phred", Above: f64(25)},
	{SubLabel: "warm", Evidence: []string{"PM1", "PM2", "PM3", "PM4", "PM5", "PM6", "PP3"}},
	{SubLabel: "warm", Field: "CADD_phred", Above: f64(20)},
}

func f64(v float64) *float64 { return &v }

// Refiner assigns a sub-label to every row in the ambiguous tier. Rule
// evaluation is total: rows matching no rule receive DefaultSubLabel, so a
// refined table never contains a bare ambiguous label.
type Refiner struct {
	// Target is the tier label subject to refinement.
	Target string
	Rules  []Rule
	// DefaultSubLabel is assigned when no rule fires.
	DefaultSubLabel string
	// SubLabelSep joins base label and sub-label in the output cell.
	SubLabelSep string
}

// NewRefiner builds a Refiner over the default rule set and target.
func NewRefiner() *Refiner {
	return &Refiner{
		Target:          TierUncertain,
		Rules:           DefaultRules,
		DefaultSubLabel: "cold",
		SubLabelSep:     DefaultSubLabelSep,
	}
}

// Refine returns the refined tier label for one row. Labels outside the
// target tier come back unchanged.
func (r *Refiner) Refine(tier string, evidence []string, fields map[string]string) string {
	if !strings.EqualFold(strings.TrimSpace(tier), r.Target) {
		return tier
	}
	for _, rule := range r.Rules {
		if r.matches(rule, evidence, fields) {
			return tier + r.SubLabelSep + rule.SubLabel
		}
	}
	return tier + r.SubLabelSep + r.DefaultSubLabel
}

func (r *Refiner) matches(rule Rule, evidence []string, fields map[string]string) bool {
	if len(rule.Evidence) > 0 {
		found := false
		for _, want := range rule.Evidence {
			for _, have := range evidence {
				if strings.EqualFold(want, have) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	if rule.Field != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[rule.Field]), 64)
		if err != nil {
			return false
		}
		if rule.Above != nil && v <= *rule.Above {
			return false
		}
		if rule.Below != nil && v >= *rule.Below {
			return false
		}
	}
	return len(rule.Evidence) > 0 || rule.Field != ""
}

// RefineTable rewrites the tier column of every ambiguous row in place of a
// derived copy; other rows and all other columns pass through unchanged.
// The evidence column is read using the same list separator the decomposer
// wrote it with.
func (r *Refiner) RefineTable(t table.Table, tierCol, evidenceCol, listSep string) (table.Table, error) {
	idx, err := t.Index(tierCol, evidenceCol)
	if err != nil {
		return table.Table{}, fmt.Errorf("refine: %w", err)
	}
	allIdx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		allIdx[c] = i
	}

	out := t.Derive(t.Columns)
	for _, row := range t.Rows {
		if !row.Complete(idx) {
			out.Rows = append(out.Rows, row)
			continue
		}
		tier := row.Fields[idx[tierCol]]
		var evidence []string
		for _, code := range strings.Split(row.Fields[idx[evidenceCol]], listSep) {
			if code = strings.TrimSpace(code); code != "" {
				evidence = append(evidence, code)
			}
		}
		fields := make(map[string]string, len(allIdx))
		for c, i := range allIdx {
			if i < len(row.Fields) {
				fields[c] = row.Fields[i]
			}
		}
		refined := r.Refine(tier, evidence, fields)
		if refined == tier {
			out.Rows = append(out.Rows, row)
			continue
		}
		copied := append([]string(nil), row.Fields...)
		copied[idx[tierCol]] = refined
		out.Append(row.Number, copied)
	}
	return out, nil
}
