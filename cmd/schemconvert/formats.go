// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/schemconvert/internal/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported schematic formats and their aliases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFormats(cmd.OutOrStdout())
	},
}

// printFormats writes the format catalog as a table.
func printFormats(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Aliases", "Extension", "Default")
	def := format.Default().Name
	for _, d := range format.All() {
		mark := ""
		if d.Name == def {
			mark = "yes"
		}
		if err := table.Append([]string{d.Name, strings.Join(d.Aliases, ", "), "." + d.Extension, mark}); err != nil {
			return err
		}
	}
	return table.Render()
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
