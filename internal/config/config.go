// SPDX-License-Identifier: Apache-2.0

// Package config defines the profile surface of the consolidation engine:
// every value that differs between the CNV and SNV/indel variants of the
// pipeline lives here, never in code. Profiles load from YAML and are
// validated against an embedded CUE schema before any table row is read;
// an invalid profile aborts the run with no partial output.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/lcgenomics/clinrank/internal/classify"
)

// Error is a configuration failure. It is always fatal and always raised
// before row processing starts.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Reason, e.Err)
	}
	return "config: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// TableConfig locates the header line in each input table.
type TableConfig struct {
	// PrimaryMetaLines and SecondaryMetaLines count the metadata lines
	// preceding each table's column header.
	PrimaryMetaLines   int `yaml:"primary_meta_lines"`
	SecondaryMetaLines int `yaml:"secondary_meta_lines"`
}

// NormalizeConfig configures the coordinate normalizer.
type NormalizeConfig struct {
	Symbols     map[string]string `yaml:"symbols"`
	RatioCutoff float64           `yaml:"ratio_cutoff"`
}

// JoinConfig names the key columns on each side of the join.
type JoinConfig struct {
	PrimaryKey   []string `yaml:"primary_key"`
	SecondaryKey []string `yaml:"secondary_key"`
}

// DecomposeConfig configures the classification decomposer.
type DecomposeConfig struct {
	Column         string `yaml:"column"`
	TierColumn     string `yaml:"tier_column"`
	EvidenceColumn string `yaml:"evidence_column"`
	Open           string `yaml:"open"`
	Close          string `yaml:"close"`
	ListSep        string `yaml:"list_sep"`
}

// RefineConfig configures sub-tier refinement of the ambiguous tier.
type RefineConfig struct {
	Target          string          `yaml:"target"`
	Rules           []classify.Rule `yaml:"rules"`
	DefaultSubLabel string          `yaml:"default_sublabel"`
	SubLabelSep     string          `yaml:"sublabel_sep"`
}

// ScoreConfig selects the secondary-score policy.
type ScoreConfig struct {
	Policy string `yaml:"policy"`
	// Column is the score source for column-reading policies
	// (segment-mean).
	Column string `yaml:"column"`
}

// Profile is the full configuration of one pipeline variant.
type Profile struct {
	Name      string          `yaml:"name"`
	Table     TableConfig     `yaml:"table"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Join      JoinConfig      `yaml:"join"`
	Decompose DecomposeConfig `yaml:"decompose"`
	Tiers     map[string]int  `yaml:"tiers"`
	Refine    RefineConfig    `yaml:"refine"`
	Score     ScoreConfig     `yaml:"score"`
}

// Load parses and validates a profile document. The CUE schema check runs
// first so that structural mistakes surface with schema-level messages
// rather than unmarshal noise.
func Load(data []byte) (Profile, error) {
	if err := validateSchema(data); err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := yaml.UnmarshalWithOptions(data, &p, yaml.Strict()); err != nil {
		return Profile{}, &Error{Reason: "unmarshaling profile", Err: err}
	}
	p.fillDefaults()
	if err := p.check(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadFile loads a profile from disk.
func LoadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, &Error{Reason: "reading profile " + path, Err: err}
	}
	p, err := Load(data)
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// fillDefaults completes fields the document left unset with the shared
// pipeline conventions.
func (p *Profile) fillDefaults() {
	if p.Normalize.Symbols == nil {
		p.Normalize.Symbols = map[string]string{"+": "DUP", "-": "DEL"}
	}
	if p.Decompose.TierColumn == "" {
		p.Decompose.TierColumn = "Tier"
	}
	if p.Decompose.EvidenceColumn == "" {
		p.Decompose.EvidenceColumn = "Evidence"
	}
	if p.Decompose.Open == "" {
		p.Decompose.Open = classify.DefaultDelimiters.Open
	}
	if p.Decompose.Close == "" {
		p.Decompose.Close = classify.DefaultDelimiters.Close
	}
	if p.Decompose.ListSep == "" {
		p.Decompose.ListSep = classify.DefaultDelimiters.ListSep
	}
	if p.Tiers == nil {
		p.Tiers = classify.DefaultTiers
	}
	if p.Refine.Target == "" {
		p.Refine.Target = classify.TierUncertain
	}
	if p.Refine.Rules == nil {
		p.Refine.Rules = classify.DefaultRules
	}
	if p.Refine.DefaultSubLabel == "" {
		p.Refine.DefaultSubLabel = "cold"
	}
	if p.Refine.SubLabelSep == "" {
		p.Refine.SubLabelSep = classify.DefaultSubLabelSep
	}
}

// check enforces the cross-field constraints the schema cannot express.
func (p *Profile) check() error {
	if p.Name == "" {
		return &Error{Reason: "profile name is required"}
	}
	if len(p.Join.PrimaryKey) != len(p.Join.SecondaryKey) {
		return &Error{Reason: fmt.Sprintf("join key width mismatch: %d primary vs %d secondary columns",
			len(p.Join.PrimaryKey), len(p.Join.SecondaryKey))}
	}
	if p.Decompose.Column == "" {
		return &Error{Reason: "decompose.column is required"}
	}
	if p.Score.Policy == "" {
		return &Error{Reason: "score.policy is required"}
	}
	if p.Score.Policy == "segment-mean" && p.Score.Column == "" {
		return &Error{Reason: "score.column is required for the segment-mean policy"}
	}
	for _, rank := range p.Tiers {
		if rank < 1 || rank > 6 {
			return &Error{Reason: fmt.Sprintf("tier rank %d outside 1-6", rank)}
		}
	}
	return nil
}
