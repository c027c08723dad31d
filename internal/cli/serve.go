// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/lcgenomics/clinrank/internal/tool"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the consolidation engine as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(&mcp.Implementation{
				Name:    "clinrank",
				Version: "0.1.0",
			}, nil)
			mcp.AddTool(server, tool.MetadataPrioritizeTable, tool.PrioritizeTable)
			mcp.AddTool(server, tool.MetadataDecomposeClassification, tool.DecomposeClassification)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
