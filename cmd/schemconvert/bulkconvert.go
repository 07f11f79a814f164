// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var bulkconvertCmd = &cobra.Command{
	Use:   "bulkconvert <folderName> <sourceFormat> [targetFormat] [destinationSubfolder]",
	Short: "Convert every .schem file in a folder to another format",
	Long: `Bulkconvert reads each .schem file directly inside <folderName> (resolved
under the data directory) as <sourceFormat> and writes it as [targetFormat]
(default FAST_V3) into [destinationSubfolder] (default "converted") inside
the same folder. Existing output files are overwritten.

Problems with the arguments are reported as messages; the command itself
still succeeds.`,
	Args: cobra.ArbitraryArgs,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a, err := newApp(loadConfig(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return a.ctrl.Complete(args, toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(loadConfig(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		job := a.ctrl.Handle(cmd.Context(), a.console, args)
		// The background job would die with the process, so wait for it.
		<-job.Done()
		a.close(cmd.Context())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bulkconvertCmd)
}
