// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lcgenomics/clinrank/internal/config"
	"github.com/lcgenomics/clinrank/internal/engine"
	"github.com/lcgenomics/clinrank/internal/rank"
	"github.com/lcgenomics/clinrank/internal/table"
)

// MetadataPrioritizeTable describes the prioritize_table tool.
var MetadataPrioritizeTable = &mcp.Tool{
	Name: "prioritize_table",
	Description: "Consolidate two tab-separated annotation tables describing the same variant/CNV " +
		"call set and return the clinically prioritized table. The primary table carries the " +
		"composite classification cell; the secondary table carries the original input coordinates " +
		"used as the join key. Rows are ordered by tier rank (Pathogenic first) and secondary " +
		"score; primary rows with no secondary match are returned separately for triage.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"primary", "secondary"},
		"properties": map[string]interface{}{
			"primary": map[string]interface{}{
				"type":        "string",
				"description": "Tab-separated primary annotation table content, header included",
			},
			"secondary": map[string]interface{}{
				"type":        "string",
				"description": "Tab-separated secondary extraction table content, header included",
			},
			"profile": map[string]interface{}{
				"type":        "string",
				"description": "Built-in profile to apply. One of: cnv, snv. Defaults to cnv.",
				"enum":        []string{"cnv", "snv"},
			},
			"top_n": map[string]interface{}{
				"type":        "integer",
				"description": "Truncate the prioritized table to its first N rows. Omit for all rows.",
			},
		},
	},
}

// InputPrioritizeTable is the input for the PrioritizeTable tool.
type InputPrioritizeTable struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Profile   string `json:"profile"`
	TopN      int    `json:"top_n"`
}

// OutputPrioritizeTable is the output for the PrioritizeTable tool.
type OutputPrioritizeTable struct {
	// Prioritized is the ordered, tab-separated result table.
	Prioritized string `json:"prioritized"`
	// Unmatched holds primary rows with no secondary match, verbatim.
	Unmatched string `json:"unmatched"`
	// Summary is the run-level diagnostics.
	Summary engine.Summary `json:"summary"`
}

// PrioritizeTable runs the consolidation pipeline over request-supplied
// table content.
func PrioritizeTable(_ context.Context, _ *mcp.CallToolRequest, input InputPrioritizeTable) (*mcp.CallToolResult, OutputPrioritizeTable, error) {
	if input.Primary == "" || input.Secondary == "" {
		return nil, OutputPrioritizeTable{}, fmt.Errorf("primary and secondary table content is required")
	}

	name := input.Profile
	if name == "" {
		name = "cnv"
	}
	profile, err := config.Builtin(name)
	if err != nil {
		return nil, OutputPrioritizeTable{}, err
	}
	// Inline content carries no metadata block regardless of profile.
	profile.Table.PrimaryMetaLines = 0
	profile.Table.SecondaryMetaLines = 0

	eng, err := engine.New(profile, nil)
	if err != nil {
		return nil, OutputPrioritizeTable{}, err
	}

	primary, err := table.Read(strings.NewReader(input.Primary), table.ReadOptions{})
	if err != nil {
		return nil, OutputPrioritizeTable{}, fmt.Errorf("primary table: %w", err)
	}
	secondary, err := table.Read(strings.NewReader(input.Secondary), table.ReadOptions{})
	if err != nil {
		return nil, OutputPrioritizeTable{}, fmt.Errorf("secondary table: %w", err)
	}

	result, err := eng.Run(primary, secondary)
	if err != nil {
		return nil, OutputPrioritizeTable{}, err
	}

	prioritized := result.Prioritized
	if input.TopN > 0 {
		prioritized = rank.TopN(prioritized, input.TopN)
	}

	return nil, OutputPrioritizeTable{
		Prioritized: render(prioritized),
		Unmatched:   render(result.Unmatched),
		Summary:     result.Summary,
	}, nil
}

func render(t table.Table) string {
	var sb strings.Builder
	_ = table.Write(&sb, t)
	return sb.String()
}
