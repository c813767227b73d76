package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/signalsfoundry/neo-explorer/kb"
	"github.com/spf13/cobra"
)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run inspect and query commands in a shell against a preloaded catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			neos, approaches := catalog.Len()
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d NEOs and %d close approaches.\n", neos, approaches)
			fmt.Fprintln(cmd.OutOrStdout(), `Enter "inspect" or "query" command lines, "help", or "quit".`)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(cmd.OutOrStdout(), "(neo) ")
				if !scanner.Scan() {
					fmt.Fprintln(cmd.OutOrStdout())
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				switch fields := strings.Fields(line); fields[0] {
				case "quit", "exit", "q":
					return nil
				case "help", "?":
					printInteractiveHelp(cmd)
				case "inspect", "i", "query":
					runInteractiveLine(cmd, catalog, fields)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "unknown command %q; try help\n", fields[0])
				}
			}
		},
	}
}

// runInteractiveLine dispatches one shell line through a fresh command
// tree so flag state never leaks between lines. The cached catalog is
// injected so the datasets are not re-read per command.
func runInteractiveLine(parent *cobra.Command, catalog *kb.Catalog, fields []string) {
	load := func(context.Context) (*kb.Catalog, error) { return catalog, nil }

	if fields[0] == "i" {
		fields[0] = "inspect"
	}

	root := &cobra.Command{Use: "neo-explorer", SilenceUsage: true}
	root.AddCommand(newInspectCmd(load))
	root.AddCommand(newQueryCmd(load))
	root.SetArgs(fields)
	root.SetOut(parent.OutOrStdout())
	root.SetErr(parent.ErrOrStderr())

	if err := root.ExecuteContext(parent.Context()); err != nil {
		fmt.Fprintf(parent.OutOrStdout(), "error: %v\n", err)
	}
}

func printInteractiveHelp(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), `Commands:
  inspect --pdes DES | --name NAME [--verbose]
  query   [filter flags] [--limit N] [--outfile FILE]
  help    show this message
  quit    leave the shell`)
}
