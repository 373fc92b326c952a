package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finance-automation/rollover/internal/config"
	"github.com/finance-automation/rollover/internal/cycle"
)

var (
	renameFrom string
	renameTo   string
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Replace a substring in task and subtask names",
	Long: `Renames every task and subtask whose name contains the --from text,
replacing each occurrence with the --to text. Typically used to roll a
month label forward, e.g. --from "MC | 25 09" --to "MC | 25 10".`,
	Args: cobra.NoArgs,
	RunE: runRename,
}

func init() {
	renameCmd.Flags().StringVar(&renameFrom, "from", "", "Text to search for in task names (required)")
	renameCmd.Flags().StringVar(&renameTo, "to", "", "Replacement text (required)")
	renameCmd.MarkFlagRequired("from")
	renameCmd.MarkFlagRequired("to")
	addRunFlags(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	if renameFrom == renameTo {
		return fmt.Errorf("--from and --to are identical; nothing to rename")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	items, err := fetchItems(ctx, client, cfg.ProjectID, []string{"name"})
	if err != nil {
		return err
	}

	changes := cycle.PlanRename(items, renameFrom, renameTo)
	return applyFlow(ctx, "rename", client, changes,
		fmt.Sprintf("Renaming %q to %q", renameFrom, renameTo),
		"Rename %d tasks/subtasks?")
}
