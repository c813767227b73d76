package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/signalsfoundry/neo-explorer/core"
	"github.com/signalsfoundry/neo-explorer/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const queryDateLayout = "2006-01-02"

// queryFlags carries the raw query flag values; only flags the user set
// become criteria bounds.
type queryFlags struct {
	date      string
	startDate string
	endDate   string

	minDistance float64
	maxDistance float64
	minVelocity float64
	maxVelocity float64
	minDiameter float64
	maxDiameter float64

	hazardous    bool
	notHazardous bool

	limit   int
	outfile string
}

func newQueryCmd(load catalogLoader) *cobra.Command {
	var qf queryFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query close approaches with optional filters",
		Long: `Query close approaches matching all given filters. Without --outfile the
matching approaches are printed; with --outfile the file extension
(.csv or .json) selects the output format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			crit, err := qf.criteria(cmd.Flags())
			if err != nil {
				return err
			}

			catalog, err := load(cmd.Context())
			if err != nil {
				return err
			}
			results := catalog.Query(crit.Matches, qf.limit)

			if qf.outfile == "" {
				for _, ca := range results {
					fmt.Fprintln(cmd.OutOrStdout(), ca)
				}
				return nil
			}
			return writeResults(qf.outfile, results)
		},
	}

	cmd.Flags().StringVar(&qf.date, "date", "", "Only approaches on this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&qf.startDate, "start-date", "", "Only approaches on or after this date")
	cmd.Flags().StringVar(&qf.endDate, "end-date", "", "Only approaches on or before this date")
	cmd.Flags().Float64Var(&qf.minDistance, "min-distance", 0, "Minimum approach distance in au")
	cmd.Flags().Float64Var(&qf.maxDistance, "max-distance", 0, "Maximum approach distance in au")
	cmd.Flags().Float64Var(&qf.minVelocity, "min-velocity", 0, "Minimum relative velocity in km/s")
	cmd.Flags().Float64Var(&qf.maxVelocity, "max-velocity", 0, "Maximum relative velocity in km/s")
	cmd.Flags().Float64Var(&qf.minDiameter, "min-diameter", 0, "Minimum NEO diameter in km")
	cmd.Flags().Float64Var(&qf.maxDiameter, "max-diameter", 0, "Maximum NEO diameter in km")
	cmd.Flags().BoolVar(&qf.hazardous, "hazardous", false, "Only potentially hazardous NEOs")
	cmd.Flags().BoolVar(&qf.notHazardous, "not-hazardous", false, "Only NEOs not marked hazardous")
	cmd.Flags().IntVar(&qf.limit, "limit", 10, "Maximum number of results (0 for all)")
	cmd.Flags().StringVarP(&qf.outfile, "outfile", "o", "", "Write results to this .csv or .json file")
	return cmd
}

// criteria maps the flags the user actually set onto criteria bounds.
func (qf *queryFlags) criteria(flags *pflag.FlagSet) (core.Criteria, error) {
	var crit core.Criteria

	dates := []struct {
		flag string
		raw  string
		dest **time.Time
	}{
		{"date", qf.date, &crit.Date},
		{"start-date", qf.startDate, &crit.StartDate},
		{"end-date", qf.endDate, &crit.EndDate},
	}
	for _, d := range dates {
		if !flags.Changed(d.flag) {
			continue
		}
		t, err := time.Parse(queryDateLayout, d.raw)
		if err != nil {
			return crit, fmt.Errorf("invalid --%s %q (want YYYY-MM-DD)", d.flag, d.raw)
		}
		*d.dest = &t
	}

	floats := []struct {
		flag  string
		value float64
		dest  **float64
	}{
		{"min-distance", qf.minDistance, &crit.MinDistance},
		{"max-distance", qf.maxDistance, &crit.MaxDistance},
		{"min-velocity", qf.minVelocity, &crit.MinVelocity},
		{"max-velocity", qf.maxVelocity, &crit.MaxVelocity},
		{"min-diameter", qf.minDiameter, &crit.MinDiameter},
		{"max-diameter", qf.maxDiameter, &crit.MaxDiameter},
	}
	for _, f := range floats {
		if flags.Changed(f.flag) {
			v := f.value
			*f.dest = &v
		}
	}

	if qf.hazardous && qf.notHazardous {
		return crit, fmt.Errorf("--hazardous and --not-hazardous are mutually exclusive")
	}
	if qf.hazardous || qf.notHazardous {
		crit.Hazardous = &qf.hazardous
	}

	return crit, nil
}

// writeResults routes the result set to a writer based on the outfile
// extension.
func writeResults(path string, results []*model.CloseApproach) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create outfile: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return core.WriteCSV(f, results)
	case ".json":
		return core.WriteJSON(f, results)
	default:
		return fmt.Errorf("%w: %q", model.ErrInvalidFormat, filepath.Ext(path))
	}
}
