// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcgenomics/clinrank/internal/engine"
	"github.com/lcgenomics/clinrank/internal/rank"
	"github.com/lcgenomics/clinrank/internal/table"
)

func newRunCommand(root *rootOptions) *cobra.Command {
	var (
		primaryPath   string
		secondaryPath string
		outPath       string
		unmatchedPath string
		topN          int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Join, decompose, refine, and rank the two annotation tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := root.loadProfile()
			if err != nil {
				return err
			}
			eng, err := engine.New(profile, slog.Default())
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

			result, err := eng.Run(primary, secondary)
			if err != nil {
				return err
			}

			prioritized := result.Prioritized
			if topN > 0 {
				prioritized = rank.TopN(prioritized, topN)
			}
			if err := writeTable(outPath, prioritized); err != nil {
				return err
			}
			if unmatchedPath != "" {
				if err := writeTable(unmatchedPath, result.Unmatched); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&primaryPath, "primary", "", "primary annotation table (classification-bearing)")
	cmd.Flags().StringVar(&secondaryPath, "secondary", "", "secondary extraction table (original coordinates)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "prioritized output table (- for stdout)")
	cmd.Flags().StringVar(&unmatchedPath, "unmatched", "", "unmatched primary rows output table")
	cmd.Flags().IntVar(&topN, "top", 0, "truncate the prioritized table to its first N rows")
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("secondary")
	return cmd
}

func readTable(path string, metaLines int) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	t, err := table.Read(f, table.ReadOptions{MetaLines: metaLines})
	if err != nil {
		return table.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func writeTable(path string, t table.Table) error {
	if path == "" || path == "-" {
		return table.Write(os.Stdout, t)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := table.Write(f, t); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
