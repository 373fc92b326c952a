package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finance-automation/rollover/internal/config"
	"github.com/finance-automation/rollover/internal/cycle"
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Move start and due dates one month forward",
	Long: `Shifts every task and subtask date to the next month while keeping its
working-day position: a date on the 3rd working day of October moves to
the 3rd working day of November. Weekends never receive dates. A date
whose position does not exist in the next month is left unchanged.`,
	Args: cobra.NoArgs,
	RunE: runShift,
}

func init() {
	addRunFlags(shiftCmd)
}

func runShift(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	items, err := fetchItems(ctx, client, cfg.ProjectID, []string{"name", "due_on", "start_on"})
	if err != nil {
		return err
	}

	changes := cycle.PlanShift(items)
	return applyFlow(ctx, "shift", client, changes,
		"Dates to shift to the next month",
		"Shift dates on %d tasks/subtasks?")
}
