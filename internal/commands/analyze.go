package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spendscope-dev/spendscope/internal/config"
	"github.com/spendscope-dev/spendscope/internal/loader"
	"github.com/spendscope-dev/spendscope/internal/pipeline"
	"github.com/spendscope-dev/spendscope/internal/report"
)

func newAnalyzeCommand() *cobra.Command {
	opts := config.Default()
	var separator, format string

	cmd := &cobra.Command{
		Use:   "analyze [source]",
		Short: "Clean a spend export and report totals, rankings and year-over-year change",
		Long: `Reads a CSV, TSV or workbook spend export, maps its headers onto
supplier, spend, category and year, drops rows that cannot be used and writes
a console summary, a chart image and a cleaned export.

Without a source, files in the current directory matching --pattern are offered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sep, err := config.ParseSeparator(separator)
			if err != nil {
				return err
			}
			f, err := config.NormalizeFormat(format)
			if err != nil {
				return err
			}
			opts.Separator = sep
			opts.Format = f
			if len(args) > 0 {
				opts.Source = args[0]
			}
			return runAnalyze(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&separator, "separator", "", `field separator for delimited input and CSV export ("," by default, tab for .tsv)`)
	cmd.Flags().StringVar(&format, "format", string(config.FormatXLSX), "export format (xlsx, csv)")
	cmd.Flags().BoolVar(&opts.KeepNegative, "keep-negative", false, "keep rows with negative spend (credits, returns)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "export path (default <source>_cleaned.<ext> beside the source)")
	cmd.Flags().StringVar(&opts.ChartPath, "chart", config.DefaultChartPath, "chart image path")
	cmd.Flags().StringVar(&opts.SummaryPath, "summary", "", "write a YAML run summary to this path")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "workbook sheet to read (default first sheet)")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", loader.DefaultPattern, "file name pattern used when no source is given")
	cmd.Flags().IntVar(&opts.TopN, "top", opts.TopN, "number of suppliers and categories to rank")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "show a progress bar while cleaning")

	return cmd
}

func runAnalyze(in io.Reader, stdout, stderr io.Writer, opts *config.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	if opts.Source == "" {
		src, err := discoverSource(in, stdout, ".", opts.Pattern)
		if err != nil {
			return err
		}
		opts.Source = src
	}

	cfg := pipeline.Config{
		Source:       opts.Source,
		Loader:       loader.Options{Separator: opts.Separator, Sheet: opts.Sheet},
		KeepNegative: opts.KeepNegative,
		TopN:         opts.TopN,
	}
	if opts.Progress {
		cfg.Progress = stderr
	}

	out, err := pipeline.Run(cfg)
	if err != nil {
		return err
	}

	if err := report.WriteSummary(stdout, out); err != nil {
		return err
	}

	if err := report.RenderChart(opts.ChartPath, out.Snapshot); err != nil {
		return err
	}
	fmt.Fprintln(stdout, report.FormatSuccess(stdout, "Chart saved to "+opts.ChartPath))

	exportPath := opts.OutputPath()
	if err := report.Export(exportPath, opts.Format, opts.ExportSeparator(), out.Records); err != nil {
		return err
	}
	fmt.Fprintln(stdout, report.FormatSuccess(stdout, fmt.Sprintf("Cleaned data (%d rows) saved to %s", len(out.Records), exportPath)))

	if opts.SummaryPath != "" {
		if err := report.WriteRunSummary(opts.SummaryPath, out); err != nil {
			return err
		}
		fmt.Fprintln(stdout, report.FormatSuccess(stdout, "Run summary saved to "+opts.SummaryPath))
	}

	slog.Info("analysis complete", "source", out.Source, "kept", len(out.Records), "dropped", out.Drops.Total())
	return nil
}
