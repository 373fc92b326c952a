package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finance-automation/rollover/internal/config"
	"github.com/finance-automation/rollover/internal/cycle"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Mark every completed task and subtask incomplete",
	Long:  `Marks all completed tasks and subtasks of the project incomplete, clearing the checkmarks left over from the previous monthly cycle.`,
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	addRunFlags(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	items, err := fetchItems(ctx, client, cfg.ProjectID, []string{"name", "completed", "parent"})
	if err != nil {
		return err
	}

	changes := cycle.PlanReset(items)
	return applyFlow(ctx, "reset", client, changes,
		"Tasks to mark incomplete",
		"Mark %d tasks/subtasks incomplete? All their checkmarks will be removed.")
}
