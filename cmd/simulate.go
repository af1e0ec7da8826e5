package cmd

import (
	"fmt"
	"os"

	"github.com/finplan/finance-planner/internal/config"
	"github.com/finplan/finance-planner/internal/narrative"
	"github.com/finplan/finance-planner/internal/output"
	"github.com/finplan/finance-planner/internal/plan"
	"github.com/finplan/finance-planner/internal/simulation"
	"github.com/finplan/finance-planner/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagIterations int
	flagNoSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the Monte Carlo retirement simulation",
	Long: `Run the Monte Carlo simulation using parameters derived from the plan
file (budget surplus, projected balance, and guaranteed income feed the
simulation inputs unless the plan sets them explicitly).`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVarP(&flagIterations, "iterations", "n", 0, "Override the plan's iteration count")
	simulateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Skip saving the summary to the local store")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	parser := config.NewPlanParser()
	p, err := parser.LoadFromFile(flagPlanFile)
	if err != nil {
		return err
	}

	result, err := plan.Evaluate(p)
	if err != nil {
		return fmt.Errorf("plan evaluation failed: %w", err)
	}

	params := result.SimulationParams
	if flagIterations > 0 {
		params.Iterations = flagIterations
	}

	engine := simulation.NewEngine()
	engine.SetLogger(stderrLogger{debug: flagVerbose})
	session := simulation.NewSession(engine)

	runID, events := session.Start(cmd.Context(), params)

	var results *simulation.Results
	for ev := range events {
		if ev.RunID != runID {
			continue
		}
		switch ev.Kind {
		case simulation.EventProgress:
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "\r  Simulating [%3d%%]", ev.PercentComplete)
			}
		case simulation.EventComplete:
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "\r  Simulating [100%%]\n")
			}
			results = ev.Results
		case simulation.EventError:
			if !flagQuiet {
				fmt.Fprintln(os.Stderr)
			}
			return fmt.Errorf("simulation failed: %s", ev.Message)
		}
	}
	if results == nil {
		return fmt.Errorf("simulation ended without results")
	}

	if !flagNoSave {
		if err := saveSummary(runID, params, results); err != nil {
			// Persistence is best-effort; the run itself succeeded.
			fmt.Fprintf(os.Stderr, "WARN  could not save summary: %v\n", err)
		}
	}

	if flagJSON {
		return output.WriteJSON(os.Stdout, results)
	}

	output.WriteSimulationReport(os.Stdout, results)

	text, err := narrative.Summarize(p.Profile.Name, p.Profile.RetirementAge, result, results)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, text)
	return nil
}

func saveSummary(runID uuid.UUID, params simulation.Parameters, results *simulation.Results) error {
	db, err := store.Open(summaryDBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.SaveSummary(runID, params, results)
}
