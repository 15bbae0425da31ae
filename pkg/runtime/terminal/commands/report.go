package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
	"github.com/biztools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/biztools/revenue-atlas/pkg/services/config"
	"github.com/biztools/revenue-atlas/pkg/services/report"
	csvstore "github.com/biztools/revenue-atlas/pkg/store/csv"
)

type ReportCmd struct {
	dataPath         string
	configPath       string
	excludeCountries []string
	minRevenue       float64
	periods          []string
	earlier          string
	later            string
	window           int
	topLosses        int
	reporter         *export.Reporter
}

func NewReportCmd(reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Assemble the quarterly revenue report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.dataPath, "data", "", "Path to the transaction record file")
	cmd.Flags().StringVar(&rc.configPath, "config", "", "Path to the report parameters file")
	cmd.Flags().StringSliceVar(&rc.excludeCountries, "exclude-country", nil, "Countries to exclude")
	cmd.Flags().Float64Var(&rc.minRevenue, "min-revenue", 0, "Minimum record revenue")
	cmd.Flags().StringSliceVar(&rc.periods, "period", nil, "Year-months to include (default: all observed)")
	cmd.Flags().StringVar(&rc.earlier, "earlier", "", "Earlier comparison quarter, e.g. 2023Q4")
	cmd.Flags().StringVar(&rc.later, "later", "", "Later comparison quarter, e.g. 2024Q1")
	cmd.Flags().IntVar(&rc.window, "window", 0, "Rolling average window in months")
	cmd.Flags().IntVar(&rc.topLosses, "top", 0, "Number of top losses to rank")

	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	params := domain.ReportParams{}
	if rc.configPath != "" {
		cfg, err := config.Load(rc.configPath)
		if err != nil {
			return err
		}
		params = cfg.Params()
	}

	// Flags override file values, but only when actually set.
	flags := cmd.Flags()
	if flags.Changed("exclude-country") {
		params.ExcludedCountries = rc.excludeCountries
	}
	if flags.Changed("min-revenue") {
		params.MinRevenue = decimal.NewFromFloat(rc.minRevenue)
	}
	if flags.Changed("period") {
		params.AllowedPeriods = rc.periods
	}
	if rc.earlier != "" && rc.later != "" {
		params.Quarters = &domain.QuarterPair{Earlier: rc.earlier, Later: rc.later}
	}
	if flags.Changed("window") {
		params.RollingWindow = rc.window
	}
	if flags.Changed("top") {
		params.TopLosses = rc.topLosses
	}

	store, err := csvstore.NewStore(rc.dataPath)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	generator := report.NewGenerator(store)
	rep, err := generator.Generate(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to assemble report: %w", err)
	}

	return rc.reporter.Handle(rep)
}
