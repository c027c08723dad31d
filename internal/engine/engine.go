// SPDX-License-Identifier: Apache-2.0

// Package engine wires the pipeline stages together: normalize, join,
// decompose, refine, rank. Each stage is a pure table-to-table function;
// the engine owns stage order, diagnostics accumulation, and the run
// summary.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/lcgenomics/clinrank/internal/classify"
	"github.com/lcgenomics/clinrank/internal/config"
	"github.com/lcgenomics/clinrank/internal/genomic"
	"github.com/lcgenomics/clinrank/internal/join"
	"github.com/lcgenomics/clinrank/internal/rank"
	"github.com/lcgenomics/clinrank/internal/scoring"
	"github.com/lcgenomics/clinrank/internal/table"
)

// Summary is the run-level diagnostics accumulated across stages. Per-row
// anomalies never abort the run; they are counted here and logged.
type Summary struct {
	PrimaryRows   int      `json:"primary_rows"`
	Matched       int      `json:"matched"`
	Unmatched     int      `json:"unmatched"`
	Malformed     int      `json:"malformed"`
	DuplicateKeys int      `json:"duplicate_keys"`
	UnknownTiers  []string `json:"unknown_tiers,omitempty"`
}

// Result is the output of a full consolidation run.
type Result struct {
	// Prioritized is the matched set, decomposed, refined, and ordered.
	Prioritized table.Table
	// Unmatched holds primary rows with no secondary match, bytes
	// untouched, for human triage.
	Unmatched table.Table
	Records   []rank.PrioritizedRecord
	Summary   Summary
}

// Engine runs the consolidation pipeline for one profile. Construction
// fails on any configuration problem so that a bad profile never processes
// a single row.
type Engine struct {
	profile config.Profile
	log     *slog.Logger

	normalizer *genomic.Normalizer
	joiner     *join.Joiner
	refiner    *classify.Refiner
	scorer     scoring.Scorer
}

// New validates the profile wiring and builds an Engine.
func New(p config.Profile, log *slog.Logger) (*Engine, error) {
	if log == nil {
		log = slog.Default()
	}
	scorer, err := scoring.New(p.Score.Policy, p.Score.Column)
	if err != nil {
		return nil, &config.Error{Reason: "score policy", Err: err}
	}
	joiner, err := join.New(join.Config{
		PrimaryKey:   p.Join.PrimaryKey,
		SecondaryKey: p.Join.SecondaryKey,
	}, log)
	if err != nil {
		return nil, &config.Error{Reason: "join", Err: err}
	}
	return &Engine{
		profile: p,
		log:     log,
		normalizer: &genomic.Normalizer{
			Symbols:     p.Normalize.Symbols,
			RatioCutoff: p.Normalize.RatioCutoff,
		},
		joiner: joiner,
		refiner: &classify.Refiner{
			Target:          p.Refine.Target,
			Rules:           p.Refine.Rules,
			DefaultSubLabel: p.Refine.DefaultSubLabel,
			SubLabelSep:     p.Refine.SubLabelSep,
		},
		scorer: scorer,
	}, nil
}

// Profile returns the engine's profile.
func (e *Engine) Profile() config.Profile { return e.profile }

// Normalize canonicalizes a raw segmentation table. It runs before the
// external annotation step, so it is exposed separately from Run.
func (e *Engine) Normalize(t table.Table) (table.Table, int, error) {
	out, malformed, err := e.normalizer.NormalizeTable(t)
	if err != nil {
		return table.Table{}, 0, fmt.Errorf("normalize: %w", err)
	}
	if malformed > 0 {
		e.log.Warn("malformed segmentation rows excluded", "count", malformed)
	}
	return out, malformed, nil
}

// Run consolidates the two annotation tables into the prioritized and
// unmatched outputs. Every primary row is accounted for exactly once:
// matched, unmatched, or counted malformed in the summary.
func (e *Engine) Run(primary, secondary table.Table) (Result, error) {
	joined, err := e.joiner.Join(primary, secondary)
	if err != nil {
		return Result{}, err
	}

	decomposed, malformed, err := classify.DecomposeTable(joined.Matched, classify.ColumnSplit{
		Source:         e.profile.Decompose.Column,
		TierColumn:     e.profile.Decompose.TierColumn,
		EvidenceColumn: e.profile.Decompose.EvidenceColumn,
	}, e.profile.Delimiters())
	if err != nil {
		return Result{}, err
	}

	refined, err := e.refiner.RefineTable(decomposed,
		e.profile.Decompose.TierColumn,
		e.profile.Decompose.EvidenceColumn,
		e.profile.Decompose.ListSep)
	if err != nil {
		return Result{}, err
	}

	vocab := classify.NewVocabulary(e.profile.Tiers, e.log)
	vocab.SubLabelSep = e.profile.Refine.SubLabelSep
	ranker := &rank.Ranker{
		Vocab:      vocab,
		Scorer:     e.scorer,
		TierColumn: e.profile.Decompose.TierColumn,
	}
	ordered, records, err := ranker.Rank(refined)
	if err != nil {
		return Result{}, err
	}

	summary := Summary{
		PrimaryRows:   len(primary.Rows),
		Matched:       len(joined.Matched.Rows),
		Unmatched:     len(joined.Unmatched.Rows),
		Malformed:     joined.Malformed + malformed,
		DuplicateKeys: joined.DuplicateKeys,
		UnknownTiers:  vocab.UnknownLabels(),
	}
	e.log.Info("consolidation complete",
		"profile", e.profile.Name,
		"primary_rows", summary.PrimaryRows,
		"matched", summary.Matched,
		"unmatched", summary.Unmatched,
		"malformed", summary.Malformed,
		"duplicate_keys", summary.DuplicateKeys,
		"unknown_tiers", len(summary.UnknownTiers))

	return Result{
		Prioritized: ordered,
		Unmatched:   joined.Unmatched,
		Records:     records,
		Summary:     summary,
	}, nil
}
