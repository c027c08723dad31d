// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcgenomics/clinrank/internal/config"
)

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	doc := []byte(`
name: custom
table:
  primary_meta_lines: 27
normalize:
  symbols:
    "+": DUP
    "-": DEL
  ratio_cutoff: 0.25
join:
  primary_key: [SV_chrom, SV_start, SV_end]
  secondary_key: [Orig_chrom, Orig_start, Orig_end]
decompose:
  column: ACMG_class
tiers:
  Pathogenic: 1
  Benign: 5
score:
  policy: segment-mean
  column: Segment_Mean
refine:
  default_sublabel: cold
  rules:
    - sublabel: hot
      evidence: [PS1, PS2]
    - sublabel: warm
      field: CADD_phred
      above: 20
`)

	p, err := config.Load(doc)
	require.NoError(t, err)

	assert.Equal(t, "custom", p.Name)
	assert.Equal(t, 27, p.Table.PrimaryMetaLines)
	assert.InDelta(t, 0.25, p.Normalize.RatioCutoff, 1e-9)
	assert.Equal(t, []string{"SV_chrom", "SV_start", "SV_end"}, p.Join.PrimaryKey)
	assert.Equal(t, 1, p.Tiers["Pathogenic"])
	require.Len(t, p.Refine.Rules, 2)
	require.NotNil(t, p.Refine.Rules[1].Above)
	assert.InDelta(t, 20, *p.Refine.Rules[1].Above, 1e-9)

	// Unset fields complete from the shared defaults.
	assert.Equal(t, "Tier", p.Decompose.TierColumn)
	assert.Equal(t, "(", p.Decompose.Open)
	assert.Equal(t, "Uncertain significance", p.Refine.Target)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown score policy",
			doc:  "name: x\ndecompose: {column: ACMG}\nscore: {policy: coin-flip}\n",
		},
		{
			name: "negative metadata line count",
			doc:  "name: x\ntable: {primary_meta_lines: -1}\ndecompose: {column: ACMG}\nscore: {policy: insilico}\n",
		},
		{
			name: "tier rank outside 1-6",
			doc:  "name: x\ndecompose: {column: ACMG}\nscore: {policy: insilico}\ntiers: {Pathogenic: 0}\n",
		},
		{
			name: "rule without sublabel",
			doc:  "name: x\ndecompose: {column: ACMG}\nscore: {policy: insilico}\nrefine: {rules: [{evidence: [PS1]}]}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load([]byte(tt.doc))
			require.Error(t, err)
			var cerr *config.Error
			assert.True(t, errors.As(err, &cerr), "want *config.Error, got %T", err)
		})
	}
}

func TestLoad_CrossFieldChecks(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains string
	}{
		{
			name:     "missing profile name",
			doc:      "decompose: {column: ACMG}\nscore: {policy: insilico}\n",
			contains: "name",
		},
		{
			name:     "join key width mismatch",
			doc:      "name: x\njoin: {primary_key: [a, b, c], secondary_key: [a]}\ndecompose: {column: ACMG}\nscore: {policy: insilico}\n",
			contains: "width mismatch",
		},
		{
			name:     "missing decompose column",
			doc:      "name: x\nscore: {policy: insilico}\n",
			contains: "decompose.column",
		},
		{
			name:     "segment-mean needs a column",
			doc:      "name: x\ndecompose: {column: ACMG}\nscore: {policy: segment-mean}\n",
			contains: "score.column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

// ---------------------------------------------------------------------------
// Builtin profiles
// ---------------------------------------------------------------------------

func TestBuiltin(t *testing.T) {
	cnv, err := config.Builtin("cnv")
	require.NoError(t, err)
	assert.Equal(t, "segment-mean", cnv.Score.Policy)
	assert.Len(t, cnv.Join.PrimaryKey, 3)
	assert.Equal(t, 27, cnv.Table.PrimaryMetaLines)

	snv, err := config.Builtin("snv")
	require.NoError(t, err)
	assert.Equal(t, "insilico", snv.Score.Policy)
	assert.Len(t, snv.Join.PrimaryKey, 5)

	_, err = config.Builtin("proteome")
	require.Error(t, err)
}

func TestBuiltin_ProfilesPassTheirOwnChecks(t *testing.T) {
	for _, name := range []string{"cnv", "snv"} {
		p, err := config.Builtin(name)
		require.NoError(t, err)
		assert.NotEmpty(t, p.Tiers)
		assert.NotEmpty(t, p.Refine.Rules)
		assert.NotEmpty(t, p.Decompose.Column)
		assert.Equal(t, len(p.Join.PrimaryKey), len(p.Join.SecondaryKey))
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := config.LoadFile("/nonexistent/profile.yaml")
	require.Error(t, err)
	var cerr *config.Error
	assert.True(t, errors.As(err, &cerr))
}
