package cmd

import (
	"fmt"
	"os"

	"github.com/finplan/finance-planner/internal/config"
	"github.com/spf13/cobra"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an example plan file to start from",
	RunE:  runExample,
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}

func runExample(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(flagPlanFile); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", flagPlanFile)
	}

	parser := config.NewPlanParser()
	if err := parser.WriteExampleFile(flagPlanFile); err != nil {
		return err
	}
	fmt.Printf("Wrote example plan to %s\n", flagPlanFile)
	return nil
}
