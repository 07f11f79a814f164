// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const consoleHelp = `Commands:
  bulkconvert <folderName> <sourceFormat> [targetFormat] [destinationSubfolder]
  formats
  help
  exit`

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Read bulkconvert commands line by line from standard input",
	Long: `Console accepts one command per line, as a server console would. Each
bulkconvert request returns immediately and runs in the background, so
several batches can be in flight at once. At end of input the console
waits for every running batch to report its summary.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(loadConfig(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())
		return runConsole(cmd.Context(), cmd.InOrStdin(), a)
	},
}

// runConsole dispatches each line of r without waiting for jobs to finish.
func runConsole(ctx context.Context, r io.Reader, a *app) error {
	out := a.console
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch strings.TrimPrefix(strings.ToLower(fields[0]), "/") {
		case "bulkconvert":
			a.ctrl.Handle(ctx, a.console, fields[1:])
		case "formats":
			if err := printFormats(out); err != nil {
				return err
			}
		case "help":
			fmt.Fprintln(out, consoleHelp)
		case "exit", "quit":
			return nil
		default:
			fmt.Fprintf(out, "Unknown command %q. Type \"help\" for a list.\n", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading console input: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
