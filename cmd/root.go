package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	flagPlanFile string
	flagDataDir  string
	flagJSON     bool
	flagQuiet    bool
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Personal finance planning CLI",
	Long:  "Plan retirement with linked calculators: budget, investment projection, Social Security, pension, and Monte Carlo simulation.",
	RunE:  runPlan,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	homeDir, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(homeDir, ".finance-planner")

	rootCmd.PersistentFlags().StringVarP(&flagPlanFile, "plan", "f", "plan.yaml", "Plan file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", defaultDataDir, "Directory for stored summaries")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of console output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// stderrLogger implements simulation.Logger on standard error.
type stderrLogger struct {
	debug bool
}

func (l stderrLogger) Debugf(format string, args ...any) {
	if l.debug {
		fmt.Fprintf(os.Stderr, "DEBUG "+format+"\n", args...)
	}
}
func (l stderrLogger) Infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "INFO  "+format+"\n", args...)
}
func (l stderrLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARN  "+format+"\n", args...)
}
func (l stderrLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR "+format+"\n", args...)
}

func summaryDBPath() string {
	return filepath.Join(flagDataDir, "summaries.db")
}
