package cmd

import (
	"fmt"
	"os"

	"github.com/finplan/finance-planner/internal/config"
	"github.com/finplan/finance-planner/internal/narrative"
	"github.com/finplan/finance-planner/internal/output"
	"github.com/finplan/finance-planner/internal/plan"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the deterministic calculators and print a plan report",
	RunE:  runPlan,
}

var flagNarrative bool

func init() {
	planCmd.Flags().BoolVar(&flagNarrative, "narrative", false, "Append a plain-English summary")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	parser := config.NewPlanParser()
	p, err := parser.LoadFromFile(flagPlanFile)
	if err != nil {
		return err
	}

	result, err := plan.Evaluate(p)
	if err != nil {
		return fmt.Errorf("plan evaluation failed: %w", err)
	}

	if flagJSON {
		return output.WriteJSON(os.Stdout, result)
	}

	output.WritePlanReport(os.Stdout, p.Profile.Name, result)

	if flagNarrative {
		text, err := narrative.Summarize(p.Profile.Name, p.Profile.RetirementAge, result, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, text)
	}
	return nil
}
