// llm.go implements the "catalogd llm" command for LLM integration hints.
//
// Reads from guide/llm.md so the onboarding text lives in one place; the
// MCP catalog_guide tool serves the same page.

package core

import (
	"github.com/jpl-au/catalogd/cmd"
	"github.com/jpl-au/catalogd/guide"
	"github.com/spf13/cobra"
)

func newLlmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "llm",
		Short: "Getting started guide for LLMs",
		Long:  `Quick reference for LLMs to discover available commands and usage patterns.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			content, err := guide.Get("llm")
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			render(content)
			return nil
		},
	}
}
