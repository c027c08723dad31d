// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcgenomics/clinrank/internal/cli"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) {
	t.Helper()
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
}

// ---------------------------------------------------------------------------
// rank
// ---------------------------------------------------------------------------

// The tables run and join write under the cnv profile keep the primary
// table's 27-line metadata block; rank must read them back without any
// extra flags for the stage-at-a-time flow to round-trip.
func TestRankCommand_ReadsProfileMetadataBlock(t *testing.T) {
	dir := t.TempDir()

	var sb strings.Builder
	for i := 0; i < 27; i++ {
		fmt.Fprintf(&sb, "##meta line %d\n", i)
	}
	sb.WriteString("SV_chrom\tTier\tEvidence\tSegment_Mean\n")
	sb.WriteString("chr3\tBenign\t\t-0.4\n")
	sb.WriteString("chr1\tPathogenic\tPS1\t1.2\n")
	in := writeFile(t, dir, "joined.tsv", sb.String())
	out := filepath.Join(dir, "ranked.tsv")

	runCommand(t, "rank", "--profile", "cnv", "-o", out, in)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 30)
	assert.Equal(t, "##meta line 0", lines[0])
	assert.Equal(t, "SV_chrom\tTier\tEvidence\tSegment_Mean", lines[27],
		"the header line must survive the metadata block")
	assert.Contains(t, lines[28], "Pathogenic")
	assert.Contains(t, lines[29], "Benign")
}

func TestRankCommand_MetaLinesOverride(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "joined.tsv",
		"SV_chrom\tTier\tEvidence\tSegment_Mean\n"+
			"chr3\tBenign\t\t-0.4\n"+
			"chr1\tPathogenic\tPS1\t1.2\n")
	out := filepath.Join(dir, "ranked.tsv")

	// A bare table has no metadata block; the override must beat the cnv
	// profile's 27-line default.
	runCommand(t, "rank", "--profile", "cnv", "--meta-lines", "0", "-o", out, in)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Pathogenic")
	assert.Contains(t, lines[2], "Benign")
}

// ---------------------------------------------------------------------------
// normalize
// ---------------------------------------------------------------------------

func TestNormalizeCommand_MetaLinesFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "segments.tsv",
		"##segmenter v3\n##sample S1\n"+
			"Chr\tStart\tEnd\tCall\tMean\n"+
			"chr1\t100\t5000\t+\t0.8\n"+
			"chr2\t50\t50\t-\t-1.2\n")
	out := filepath.Join(dir, "normalized.tsv")

	runCommand(t, "normalize", "--profile", "cnv", "--meta-lines", "2", "-o", out, in)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4, "two metadata lines, header, one surviving row")
	assert.Equal(t, "##segmenter v3", lines[0])
	assert.Equal(t, "chr1\t100\t5000\tDUP\t0.8", lines[3])
}
