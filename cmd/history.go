package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kjourdan1/egressctl/internal/history"
	"github.com/kjourdan1/egressctl/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previous egressctl runs",
	Long: `Displays run events written by egressctl in JSONL format.

By default, reads ~/.egressctl/history.log and prints the latest events.`,
	RunE: runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max number of events to display")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	_ = args
	events, err := history.Read()
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stderr, "No recorded runs.")
		return nil
	}

	if jsonOutput {
		output.Init(verbosity > 0, true)
		output.JSON(events)
		return nil
	}

	start := 0
	if historyLimit > 0 && len(events) > historyLimit {
		start = len(events) - historyLimit
	}

	bold := color.New(color.Bold)
	bold.Fprintln(os.Stderr, "egressctl history")
	for _, event := range events[start:] {
		status := color.New(color.FgGreen)
		if event.Result != "success" {
			status = color.New(color.FgRed)
		}
		status.Fprintf(os.Stderr, "  %s", event.Result)
		fmt.Fprintf(os.Stderr, "  %s  op=%s", event.Timestamp, event.Operation)
		if event.Subscriptions != "" {
			fmt.Fprintf(os.Stderr, "  subscriptions=%s", event.Subscriptions)
		}
		fmt.Fprintf(os.Stderr, "  exit=%d  duration=%dms\n", event.ExitCode, event.DurationMs)
	}

	return nil
}
