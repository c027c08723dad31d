// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the consolidation engine's operations as MCP tools
// for interactive triage sessions.
package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lcgenomics/clinrank/internal/classify"
)

// MetadataDecomposeClassification describes the decompose_classification tool.
var MetadataDecomposeClassification = &mcp.Tool{
	Name: "decompose_classification",
	Description: "Split a composite pathogenicity-classification cell into its tier label and " +
		"supporting evidence codes, and report the refined sub-tier for uncertain calls. " +
		"Cells without an evidence delimiter are not errors: the raw cell is returned as the " +
		"tier label with no evidence codes.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"cell"},
		"properties": map[string]interface{}{
			"cell": map[string]interface{}{
				"type":        "string",
				"description": "Composite classification cell, e.g. \"Likely pathogenic (PS1, PM2)\"",
			},
		},
	},
}

// InputDecomposeClassification is the input for the DecomposeClassification tool.
type InputDecomposeClassification struct {
	Cell string `json:"cell"`
}

// OutputDecomposeClassification is the output for the DecomposeClassification tool.
type OutputDecomposeClassification struct {
	TierLabel     string   `json:"tier_label"`
	EvidenceCodes []string `json:"evidence_codes"`
	// Malformed reports that the cell carried no evidence delimiter.
	Malformed bool `json:"malformed"`
	// RefinedLabel carries the sub-tier label for uncertain calls; equal to
	// TierLabel for every other tier.
	RefinedLabel string `json:"refined_label"`
	TierRank     int    `json:"tier_rank"`
}

// DecomposeClassification decomposes one classification cell with the
// default delimiters, rule set, and tier vocabulary.
func DecomposeClassification(_ context.Context, _ *mcp.CallToolRequest, input InputDecomposeClassification) (*mcp.CallToolResult, OutputDecomposeClassification, error) {
	if input.Cell == "" {
		return nil, OutputDecomposeClassification{}, fmt.Errorf("cell is required")
	}

	dec := classify.Decompose(input.Cell, classify.DefaultDelimiters)
	_, malformed := dec.(classify.Malformed)

	refiner := classify.NewRefiner()
	refined := refiner.Refine(dec.TierLabel(), dec.EvidenceCodes(), nil)

	vocab := classify.NewVocabulary(nil, nil)
	return nil, OutputDecomposeClassification{
		TierLabel:     dec.TierLabel(),
		EvidenceCodes: dec.EvidenceCodes(),
		Malformed:     malformed,
		RefinedLabel:  refined,
		TierRank:      vocab.Rank(refined),
	}, nil
}
