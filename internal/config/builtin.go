// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/lcgenomics/clinrank/internal/classify"
)

// CNVProfile is the built-in profile for the copy-number pipeline: AnnotSV
// style primary table with a metadata block, coordinate-only join key, and
// segment-mean secondary scoring.
func CNVProfile() Profile {
	p := Profile{
		Name:  "cnv",
		Table: TableConfig{PrimaryMetaLines: 27},
		Normalize: NormalizeConfig{
			Symbols:     map[string]string{"+": "DUP", "-": "DEL"},
			RatioCutoff: 0.3,
		},
		Join: JoinConfig{
			PrimaryKey:   []string{"SV_chrom", "SV_start", "SV_end"},
			SecondaryKey: []string{"Orig_chrom", "Orig_start", "Orig_end"},
		},
		Decompose: DecomposeConfig{Column: "ACMG_class"},
		Score:     ScoreConfig{Policy: "segment-mean", Column: "Segment_Mean"},
	}
	p.fillDefaults()
	return p
}

// SNVProfile is the built-in profile for the small-variant pipeline:
// multianno-style tables with a single header line, five-field join key, and
// the in-silico secondary-score hierarchy.
func SNVProfile() Profile {
	p := Profile{
		Name: "snv",
		Join: JoinConfig{
			PrimaryKey:   []string{"Chr", "Start", "End", "Ref", "Alt"},
			SecondaryKey: []string{"Otherinfo4", "Otherinfo5", "Otherinfo6", "Otherinfo7", "Otherinfo8"},
		},
		Decompose: DecomposeConfig{Column: "ACMG"},
		Score:     ScoreConfig{Policy: "insilico"},
	}
	p.fillDefaults()
	return p
}

// Builtin resolves a built-in profile by name.
func Builtin(name string) (Profile, error) {
	switch name {
	case "cnv":
		return CNVProfile(), nil
	case "snv":
		return SNVProfile(), nil
	default:
		return Profile{}, &Error{Reason: fmt.Sprintf("unknown built-in profile %q (want cnv or snv)", name)}
	}
}

// Delimiters converts the decompose section to the classify type.
func (p Profile) Delimiters() classify.Delimiters {
	return classify.Delimiters{
		Open:    p.Decompose.Open,
		Close:   p.Decompose.Close,
		ListSep: p.Decompose.ListSep,
	}
}
