package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spendscope-dev/spendscope/internal/loader"
	"github.com/spendscope-dev/spendscope/internal/report"
)

func newScanCommand() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "List spend files that analyze would offer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runScan(cmd.OutOrStdout(), dir, pattern)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", loader.DefaultPattern, "file name pattern")

	return cmd
}

func runScan(w io.Writer, dir, pattern string) error {
	files, err := loader.Scan(dir, pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, report.FormatWarning(w, fmt.Sprintf("No files matching %q in %s", pattern, dir)))
		return nil
	}
	for _, f := range files {
		fmt.Fprintf(w, "%s  %s\n", f.Path, formatSize(f.Size))
	}
	return nil
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
