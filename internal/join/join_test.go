// SPDX-License-Identifier: Apache-2.0

package join_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcgenomics/clinrank/internal/join"
	"github.com/lcgenomics/clinrank/internal/table"
)

func mustRead(t *testing.T, s string) table.Table {
	t.Helper()
	tbl, err := table.Read(strings.NewReader(s), table.ReadOptions{})
	require.NoError(t, err)
	return tbl
}

func fiveFieldJoiner(t *testing.T) *join.Joiner {
	t.Helper()
	j, err := join.New(join.Config{
		PrimaryKey:   []string{"Chr", "Start", "End", "Ref", "Alt"},
		SecondaryKey: []string{"OChr", "OStart", "OEnd", "ORef", "OAlt"},
	}, nil)
	require.NoError(t, err)
	return j
}

// ---------------------------------------------------------------------------
// Join
// ---------------------------------------------------------------------------

func TestJoin_PartitionsEveryPrimaryRow(t *testing.T) {
	primary := mustRead(t, "Chr\tStart\tEnd\tRef\tAlt\tACMG\n"+
		"chr1\t100\t101\tA\tG\tPathogenic\n"+
		"chr2\t200\t201\tC\tT\tBenign\n"+
		"chr3\t1000\t1010\tA\tG\tLikely benign\n")
	secondary := mustRead(t, "OChr\tOStart\tOEnd\tORef\tOAlt\tGene\n"+
		"chr1\t100\t101\tA\tG\tBRCA1\n"+
		"chr2\t200\t201\tC\tT\tTP53\n")

	res, err := fiveFieldJoiner(t).Join(primary, secondary)
	require.NoError(t, err)

	// Every primary row is matched or unmatched, never both, never neither.
	assert.Equal(t, len(primary.Rows), len(res.Matched.Rows)+len(res.Unmatched.Rows))
	assert.Len(t, res.Matched.Rows, 2)
	assert.Len(t, res.Unmatched.Rows, 1)

	// The matched set carries the union of both tables' columns in order.
	assert.Equal(t, []string{"Chr", "Start", "End", "Ref", "Alt", "ACMG", "OChr", "OStart", "OEnd", "ORef", "OAlt", "Gene"},
		res.Matched.Columns)
	assert.Equal(t, "chr1\t100\t101\tA\tG\tPathogenic\tchr1\t100\t101\tA\tG\tBRCA1", res.Matched.Rows[0].Line)
}

func TestJoin_UnmatchedRowsUntouched(t *testing.T) {
	primary := mustRead(t, "Chr\tStart\tEnd\tRef\tAlt\tACMG\n"+
		"chr3\t1000\t1010\tA\tG\tUncertain significance (PM2)\n")
	secondary := mustRead(t, "OChr\tOStart\tOEnd\tORef\tOAlt\tGene\n"+
		"chr9\t5\t6\tG\tC\tABL1\n")

	res, err := fiveFieldJoiner(t).Join(primary, secondary)
	require.NoError(t, err)

	require.Len(t, res.Unmatched.Rows, 1)
	assert.Equal(t, primary.Rows[0].Line, res.Unmatched.Rows[0].Line,
		"unmatched rows must be byte-identical to their source")
	assert.Empty(t, res.Matched.Rows)
}

func TestJoin_DuplicateSecondaryKeysFirstWins(t *testing.T) {
	primary := mustRead(t, "Chr\tStart\tEnd\tRef\tAlt\n"+
		"chr1\t100\t101\tA\tG\n")
	secondary := mustRead(t, "OChr\tOStart\tOEnd\tORef\tOAlt\tGene\n"+
		"chr1\t100\t101\tA\tG\tFIRST\n"+
		"chr1\t100\t101\tA\tG\tSECOND\n")

	j, err := join.New(join.Config{
		PrimaryKey:   []string{"Chr", "Start", "End", "Ref", "Alt"},
		SecondaryKey: []string{"OChr", "OStart", "OEnd", "ORef", "OAlt"},
	}, nil)
	require.NoError(t, err)

	res, err := j.Join(primary, secondary)
	require.NoError(t, err)

	assert.Equal(t, 1, res.DuplicateKeys)
	require.Len(t, res.Matched.Rows, 1)
	assert.Contains(t, res.Matched.Rows[0].Line, "FIRST")
	assert.NotContains(t, res.Matched.Rows[0].Line, "SECOND")
}

func TestJoin_CoordinateOnlyKey(t *testing.T) {
	primary := mustRead(t, "SV_chrom\tSV_start\tSV_end\tACMG_class\n"+
		"chr1\t100\t5000\tPathogenic\n")
	secondary := mustRead(t, "Orig_chrom\tOrig_start\tOrig_end\tGenes\n"+
		"chr1\t100\t5000\tMYC;PVT1\n")

	j, err := join.New(join.Config{
		PrimaryKey:   []string{"SV_chrom", "SV_start", "SV_end"},
		SecondaryKey: []string{"Orig_chrom", "Orig_start", "Orig_end"},
	}, nil)
	require.NoError(t, err)

	res, err := j.Join(primary, secondary)
	require.NoError(t, err)
	assert.Len(t, res.Matched.Rows, 1)
	assert.Empty(t, res.Unmatched.Rows)
}

func TestJoin_ShortPrimaryRowIsMalformed(t *testing.T) {
	primary := mustRead(t, "Chr\tStart\tEnd\tRef\tAlt\n"+
		"chr1\t100\t101\tA\tG\n"+
		"chr2\t200\n")
	secondary := mustRead(t, "OChr\tOStart\tOEnd\tORef\tOAlt\n"+
		"chr1\t100\t101\tA\tG\n")

	res, err := fiveFieldJoiner(t).Join(primary, secondary)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Malformed)
	assert.Len(t, res.Matched.Rows, 1)
	assert.Empty(t, res.Unmatched.Rows)
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_ConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  join.Config
	}{
		{name: "empty key columns", cfg: join.Config{}},
		{
			name: "width mismatch",
			cfg: join.Config{
				PrimaryKey:   []string{"Chr", "Start", "End"},
				SecondaryKey: []string{"OChr", "OStart", "OEnd", "ORef", "OAlt"},
			},
		},
		{
			name: "unsupported key width",
			cfg: join.Config{
				PrimaryKey:   []string{"Chr", "Start"},
				SecondaryKey: []string{"OChr", "OStart"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := join.New(tt.cfg, nil)
			require.Error(t, err)
		})
	}
}

func TestJoin_MissingKeyColumnFails(t *testing.T) {
	primary := mustRead(t, "Chrom\tStart\tEnd\tRef\tAlt\n")
	secondary := mustRead(t, "OChr\tOStart\tOEnd\tORef\tOAlt\n")

	_, err := fiveFieldJoiner(t).Join(primary, secondary)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary table")
}
