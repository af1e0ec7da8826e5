package cmd

import (
	"fmt"
	"os"

	"github.com/finplan/finance-planner/internal/output"
	"github.com/finplan/finance-planner/internal/store"
	"github.com/finplan/finance-planner/pkg/money"
	"github.com/spf13/cobra"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored simulation summaries",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum summaries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.Open(summaryDBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runs, err := db.ListRuns(flagLimit)
	if err != nil {
		return fmt.Errorf("listing stored runs: %w", err)
	}

	if flagJSON {
		return output.WriteJSON(os.Stdout, runs)
	}

	if len(runs) == 0 {
		fmt.Println("No stored simulation runs.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %10s  %8s  %14s\n", "RUN", "WHEN", "ITERATIONS", "SUCCESS", "MEDIAN FINAL")
	for _, run := range runs {
		fmt.Printf("%-36s  %-20s  %10d  %7.1f%%  %14s\n",
			run.RunID,
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Params.Iterations,
			run.Summary.SuccessRatePct,
			money.New(run.Summary.MedianFinalBalance).Round().Format(),
		)
	}
	return nil
}
