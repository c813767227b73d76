package commands

import (
	"fmt"

	"github.com/signalsfoundry/neo-explorer/model"
	"github.com/spf13/cobra"
)

func newInspectCmd(load catalogLoader) *cobra.Command {
	var (
		pdes    string
		name    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a single NEO by designation or name",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (pdes == "") == (name == "") {
				return fmt.Errorf("exactly one of --pdes or --name is required")
			}

			catalog, err := load(cmd.Context())
			if err != nil {
				return err
			}

			var neo *model.NearEarthObject
			if pdes != "" {
				neo = catalog.GetByDesignation(pdes)
			} else {
				neo = catalog.GetByName(name)
			}
			if neo == nil {
				return fmt.Errorf("no matching NEO found")
			}

			fmt.Fprintln(cmd.OutOrStdout(), neo)
			if verbose {
				for _, ca := range neo.Approaches {
					fmt.Fprintf(cmd.OutOrStdout(), "- %v\n", ca)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pdes, "pdes", "", "Primary designation of the NEO")
	cmd.Flags().StringVar(&name, "name", "", "IAU name of the NEO")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also list every close approach of the NEO")
	return cmd
}
