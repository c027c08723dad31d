// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lcgenomics/clinrank/internal/classify"
	"github.com/lcgenomics/clinrank/internal/engine"
	"github.com/lcgenomics/clinrank/internal/join"
	"github.com/lcgenomics/clinrank/internal/rank"
	"github.com/lcgenomics/clinrank/internal/scoring"
)

// The stage commands run one pipeline stage in isolation, for debugging a
// pipeline run stage by stage against intermediate files.

func newNormalizeCommand(root *rootOptions) *cobra.Command {
	var (
		outPath   string
		metaLines int
	)

	cmd := &cobra.Command{
		Use:   "normalize <segments.tsv>",
		Short: "Canonicalize a raw segmentation table (symbol mapping, length filter)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := root.loadProfile()
			if err != nil {
				return err
			}
			eng, err := engine.New(profile, slog.Default())
			if err != nil {
				return err
			}
			t, err := readTable(args[0], metaLines)
			if err != nil {
				return err
			}
			out, _, err := eng.Normalize(t)
			if err != nil {
				return err
			}
			return writeTable(outPath, out)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "normalized output table (- for stdout)")
	cmd.Flags().IntVar(&metaLines, "meta-lines", 0, "metadata lines before the segmentation table header")
	return cmd
}

func newJoinCommand(root *rootOptions) *cobra.Command {
	var (
		primaryPath   string
		secondaryPath string
		matchedPath   string
		unmatchedPath string
	)

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the two annotation tables into matched and unmatched sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := root.loadProfile()
			if err != nil {
				return err
			}
			joiner, err := join.New(join.Config{
				PrimaryKey:   profile.Join.PrimaryKey,
				SecondaryKey: profile.Join.SecondaryKey,
			}, slog.Default())
			if err != nil {
				return err
			}
			primary, err := readTable(primaryPath, profile.Table.PrimaryMetaLines)
			if err != nil {
				return err
			}
			secondary, err := readTable(secondaryPath, profile.Table.SecondaryMetaLines)
			if err != nil {
				return err
			}
			result, err := joiner.Join(primary, secondary)
			if err != nil {
				return err
			}
			if err := writeTable(matchedPath, result.Matched); err != nil {
				return err
			}
			return writeTable(unmatchedPath, result.Unmatched)
		},
	}

	cmd.Flags().StringVar(&primaryPath, "primary", "", "primary annotation table")
	cmd.Flags().StringVar(&secondaryPath, "secondary", "", "secondary extraction table")
	cmd.Flags().StringVar(&matchedPath, "matched", "-", "matched set output (- for stdout)")
	cmd.Flags().StringVar(&unmatchedPath, "unmatched", "unmatched.tsv", "unmatched set output")
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("secondary")
	return cmd
}

func newRankCommand(root *rootOptions) *cobra.Command {
	var (
		outPath   string
		metaLines int
	)

	cmd := &cobra.Command{
		Use:   "rank <joined.tsv>",
		Short: "Re-rank an already consolidated table",
		Long: "Re-rank a table that already carries the tier and evidence columns. " +
			"Ranking is stable and idempotent: ranking an already ranked table reproduces it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := root.loadProfile()
			if err != nil {
				return err
			}
			scorer, err := scoring.New(profile.Score.Policy, profile.Score.Column)
			if err != nil {
				return err
			}
			// The tables written by run and join keep the primary table's
			// metadata block, so its line count is the default here.
			if metaLines < 0 {
				metaLines = profile.Table.PrimaryMetaLines
			}
			t, err := readTable(args[0], metaLines)
			if err != nil {
				return err
			}
			vocab := classify.NewVocabulary(profile.Tiers, slog.Default())
			vocab.SubLabelSep = profile.Refine.SubLabelSep
			ranker := &rank.Ranker{
				Vocab:      vocab,
				Scorer:     scorer,
				TierColumn: profile.Decompose.TierColumn,
			}
			ordered, _, err := ranker.Rank(t)
			if err != nil {
				return err
			}
			return writeTable(outPath, ordered)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "ranked output table (- for stdout)")
	cmd.Flags().IntVar(&metaLines, "meta-lines", -1, "metadata lines before the table header (-1: the profile's primary table count)")
	return cmd
}
