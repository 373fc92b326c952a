package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finance-automation/rollover/internal/asana"
	"github.com/finance-automation/rollover/internal/config"
	"github.com/finance-automation/rollover/internal/cycle"
	"github.com/finance-automation/rollover/internal/display"
	"github.com/finance-automation/rollover/internal/report"
	"github.com/finance-automation/rollover/internal/runner"
	"github.com/finance-automation/rollover/internal/tui"
)

var (
	assumeYes bool
	plainMode bool
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&plainMode, "plain", false, "Print progress lines instead of the interactive view")
}

// confirmInput is swapped in tests.
var confirmInput io.Reader = os.Stdin

// confirm asks a yes/no question on stdin; anything but y/yes declines.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)

	reader := bufio.NewReader(confirmInput)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes"
}

func newClient(cfg *config.Config) *asana.Client {
	client := asana.New(cfg.Token)
	if cfg.BaseURL != "" {
		client = client.WithBaseURL(cfg.BaseURL)
	}
	return client
}

// fetchItems reads the whole project behind a status line, since the
// subtask scan can take minutes on large projects.
func fetchItems(ctx context.Context, client *asana.Client, projectID string, fields []string) ([]cycle.Item, error) {
	status := display.NewStatusLine(os.Stdout)
	status.Start("fetching tasks")
	defer status.Stop()

	return cycle.NewFetcher(client).Items(ctx, projectID, fields, status)
}

// applyFlow runs the shared preview -> confirm -> apply -> report tail
// of every mutating command. prompt is a format string receiving the
// change count.
func applyFlow(ctx context.Context, command string, client *asana.Client, changes []cycle.Change, title, prompt string) error {
	if len(changes) == 0 {
		fmt.Println("Nothing to update.")
		return nil
	}

	display.Preview(os.Stdout, title, changes)
	fmt.Println()

	if !assumeYes {
		if !confirm(fmt.Sprintf(prompt, len(changes))) {
			fmt.Println("Aborted; nothing was changed.")
			return nil
		}
	}

	run := runner.New(client)
	var (
		summary  runner.Summary
		outcomes []runner.Outcome
		runErr   error
	)
	if plainMode {
		summary, outcomes, runErr = run.WithEvents(&display.PlainEvents{W: os.Stdout}).Apply(ctx, changes)
	} else {
		summary, outcomes, runErr = tui.Run(ctx, title, run, changes)
	}

	reportPath := ""
	rep, err := report.New(command, summary, outcomes)
	if err == nil {
		reportPath, err = report.NewStorage(report.DefaultDir()).Save(rep)
	}
	if err != nil {
		fmt.Printf("warning: could not save run report: %v\n", err)
	}

	display.Summary(os.Stdout, summary, reportPath)

	if runErr != nil {
		fmt.Println("Remaining tasks were left untouched.")
		return fmt.Errorf("run cancelled: %w", runErr)
	}
	return nil
}
