package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/finance-automation/rollover/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past runs",
	Long:  `Lists the run reports recorded under .rollover/runs/, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	reports, err := report.NewStorage(report.DefaultDir()).List()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(reports) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tCOMMAND\tRESULT\tID")

	for _, r := range reports {
		result := fmt.Sprintf("%d ok", r.Succeeded)
		if r.Failed > 0 {
			result = fmt.Sprintf("%d ok, %d failed", r.Succeeded, r.Failed)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", formatAge(r.StartedAt), r.Command, result, r.ID)
	}

	return w.Flush()
}

// formatAge returns a human-readable relative time string.
func formatAge(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	}

	minutes := int(duration.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := int(duration.Hours())
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd ago", days)
}
