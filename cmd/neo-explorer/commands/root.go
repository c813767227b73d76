package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/signalsfoundry/neo-explorer/core"
	"github.com/signalsfoundry/neo-explorer/internal/logging"
	"github.com/signalsfoundry/neo-explorer/kb"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	neoFile string
	cadFile string

	log = logging.NewFromEnv()
)

// catalogLoader produces a linked catalog for a command to run against.
// The interactive shell swaps in a loader that returns its cached catalog
// so the datasets are read once per session, not once per command.
type catalogLoader func(ctx context.Context) (*kb.Catalog, error)

func newRootCmd(load catalogLoader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "neo-explorer",
		Short: "Explore close approaches of near-Earth objects",
		Long: `neo-explorer loads NASA's near-Earth object and close-approach datasets
and answers questions about them: inspect an NEO by designation or name,
query close approaches with date, distance, velocity, diameter, and
hazard filters, or serve the catalog over HTTP.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&neoFile, "neofile", "data/neos.csv", "Path to the NEO dataset (CSV)")
	rootCmd.PersistentFlags().StringVar(&cadFile, "cadfile", "data/cad.json", "Path to the close-approach dataset (JSON)")

	rootCmd.AddCommand(newInspectCmd(load))
	rootCmd.AddCommand(newQueryCmd(load))
	rootCmd.AddCommand(newInteractiveCmd())
	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd(loadCatalog).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadCatalog reads both dataset files and runs the linking pass. Command
// bodies only ever see a fully linked catalog.
func loadCatalog(ctx context.Context) (*kb.Catalog, error) {
	nf, err := os.Open(neoFile)
	if err != nil {
		return nil, fmt.Errorf("open NEO dataset: %w", err)
	}
	defer nf.Close()

	neos, err := core.LoadNEOs(nf)
	if err != nil {
		return nil, err
	}

	cf, err := os.Open(cadFile)
	if err != nil {
		return nil, fmt.Errorf("open close-approach dataset: %w", err)
	}
	defer cf.Close()

	approaches, err := core.LoadApproaches(cf)
	if err != nil {
		return nil, err
	}

	catalog, err := kb.NewCatalog(neos, approaches)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, "catalog loaded",
		logging.Int("neos", len(neos)),
		logging.Int("approaches", len(approaches)),
	)
	return catalog, nil
}
