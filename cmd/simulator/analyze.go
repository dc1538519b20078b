package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"mode-allocation-simulator/internal/adapters/charts"
	"mode-allocation-simulator/internal/adapters/costs"
	"mode-allocation-simulator/internal/adapters/tabular"
	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/services"

	"github.com/spf13/cobra"
)

type analyzeFlags struct {
	input  string
	start  string
	end    string
	view   string
	export string
	chart  string
	limit  int
}

func newAnalyzeCmd(global *globalFlags) *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a demand table against the reference lane costs",
		Example: `  simulator analyze --input demanda.xlsx
  simulator analyze --input demanda.csv --start 2024-01-01 --end 2024-03-31 --view summary
  simulator analyze --input demanda.xlsx --export resultado_datalake.xlsx --chart saving.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "demand table (.xlsx or .csv)")
	cmd.Flags().StringVar(&flags.start, "start", "", "first shipment date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.end, "end", "", "last shipment date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.view, "view", "all", "tables to print: detail, summary or all")
	cmd.Flags().StringVar(&flags.export, "export", "", "write the detail table to this .xlsx file")
	cmd.Flags().StringVar(&flags.chart, "chart", "", "write the monthly saving chart to this .png or .html file")
	cmd.Flags().IntVar(&flags.limit, "limit", 20, "detail rows to print (0 prints all)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runAnalyze(cmd *cobra.Command, global *globalFlags, flags analyzeFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	view, err := services.ParseView(flags.view)
	if err != nil {
		return err
	}
	start, err := parseDateFlag("start", flags.start)
	if err != nil {
		return err
	}
	end, err := parseDateFlag("end", flags.end)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	demands, warnings, err := tabular.ReadDemandsFile(flags.input)
	if err != nil {
		return err
	}

	repo, closeCosts, err := costs.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeCosts() }()

	policy := services.DuplicateKeepFirst
	if cfg.StrictLanes {
		policy = services.DuplicateReject
	}

	report, err := services.RunAnalysis(ctx, services.AnalysisRequest{
		Demands:         demands,
		DateRange:       services.ResolveDateRange(demands, start, end),
		DuplicatePolicy: policy,
		LoadWarnings:    warnings,
	}, repo)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderReport(out, report, view, flags.limit)

	if flags.export != "" {
		if err := exportDetail(flags.export, report.Records); err != nil {
			return err
		}
		fmt.Fprintf(out, "\ndetail written to %s\n", flags.export)
	}
	if flags.chart != "" {
		if err := charts.WriteFile(flags.chart, report.Savings); err != nil {
			return err
		}
		fmt.Fprintf(out, "chart written to %s\n", flags.chart)
	}

	return nil
}

func parseDateFlag(name, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("--%s: invalid date %q (want YYYY-MM-DD)", name, s)
	}
	return &t, nil
}

func exportDetail(path string, records []domain.EvaluatedRecord) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export detail: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export detail: close %q: %w", path, cerr)
		}
	}()

	return tabular.WriteDetailXLSX(f, records)
}
