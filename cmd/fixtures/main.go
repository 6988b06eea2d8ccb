package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/fixtures/internal/config"
	"github.com/courtside/fixtures/internal/excel"
	"github.com/courtside/fixtures/internal/schedule"
	"github.com/courtside/fixtures/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Netball league fixture schedule generator",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate fixture schedules",
	}

	var configFile, unavailFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")
	scheduleCmd.PersistentFlags().StringVar(&unavailFile, "unavailability", "", "Optional spreadsheet of team unavailability (Team/Date columns)")

	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a fixture schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, unavailFile, outputFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "fixtures.xlsx", "Output Excel file path")

	validateCmd := &cobra.Command{
		Use:          "validate <fixtures.xlsx>",
		Short:        "Validate an exported schedule against the config",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, unavailFile, args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# League Season Configuration
# ===========================
# This file defines the parameters for generating a fixture schedule.

# Season defines the date range and the weekdays on which matches are played.
season:
  start_date: "2026-01-10"
  end_date: "2026-03-28"
  play_days: [Saturday]

  # Blackout dates are full days where no matches will be scheduled on any
  # court. Common examples: holidays, venue closures, representative rounds.
  blackout_dates:
    - date: "2026-02-14"
      reason: "Regional carnival"

# Divisions and their teams. The number of divisions and teams per division
# can vary. Team names must be unique across all divisions. A division with
# fewer than two teams is skipped with a note in the processing log.
divisions:
  - name: Division 1
    teams: [Falcons, Hornets, Comets, Swifts, Thunder]
  - name: Division 2
    teams: [Magpies, Vixens, Fever, Lightning]

# Courts available each play day, in preferred assignment order.
courts: [Court 1, Court 2]

# Time slots available on each court, in preferred assignment order.
# Times use 24-hour format.
time_slots: ["09:00", "10:30", "12:00"]

# Seed for the fixture-order shuffle. Identical config, unavailability and
# seed reproduce an identical schedule; the seed is recorded in the log.
seed: 42

# Goals are soft preferences. The scheduler favors them when choosing
# between valid fixtures but never leaves a slot empty to satisfy one.
goals:
  # Schedule fixtures for teams with the fewest available dates first.
  scarcity_priority: true
  # Prefer at most this many matches per division per date (0 to disable).
  max_division_matches_per_day: 0

# Team unavailability can be listed here, supplied as a spreadsheet with
# Team and Date columns via --unavailability, or both.
unavailability:
  - team: Falcons
    date: "2026-01-17"
`

func runGenerate(configPath, unavailPath, outputPath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	unavail, err := loadUnavailability(cfg, unavailPath)
	if err != nil {
		return err
	}

	result, schedErr := schedule.Schedule(cfg, unavail)
	if schedErr != nil {
		for _, e := range result.Log {
			fmt.Fprintf(os.Stderr, "%s: %s\n", e.Step, e.Detail)
		}
		return schedErr
	}

	total := len(result.Matches) + len(result.Leftover)
	fmt.Printf("✓ %d of %d fixtures scheduled\n", len(result.Matches), total)

	fmt.Println("\nDivision Completeness:")
	fmt.Printf("  %-20s %10s %10s\n", "Division", "Scheduled", "Required")
	for _, c := range result.Completeness {
		mark := " "
		if !c.Complete {
			mark = "⚠"
		}
		fmt.Printf("  %-20s %10d %10d %s\n", c.Division, c.Scheduled, c.Required, mark)
	}

	if len(result.Leftover) > 0 {
		fmt.Printf("\n⚠ %d fixtures could not be scheduled:\n", len(result.Leftover))
		for _, fx := range result.Leftover {
			fmt.Printf("  • %s: %s vs %s\n", fx.Division, fx.Home, fx.Away)
		}
	}

	warnings := 0
	for _, e := range result.Log {
		if e.Status == schedule.StatusWarning {
			warnings++
		}
	}
	if warnings > 0 {
		fmt.Printf("\n%d warnings in the processing log (see the %s sheet)\n", warnings, "Processing Log")
	}

	f, err := excel.Generate(cfg, result)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	if len(result.Leftover) > 0 {
		return fmt.Errorf("schedule is incomplete: %d of %d fixtures scheduled", len(result.Matches), total)
	}
	return nil
}

func runValidate(configPath, unavailPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	unavail, err := loadUnavailability(cfg, unavailPath)
	if err != nil {
		return err
	}

	violations, err := validator.Validate(cfg, unavail, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Invariant violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d invariant violations, %d warnings\n", errors, warnings)
	if errors > 0 {
		return fmt.Errorf("%d invariant violations found", errors)
	}
	return nil
}

// loadUnavailability merges the records listed in the config with an
// optional spreadsheet. The two sources are treated as one set.
func loadUnavailability(cfg *config.Config, unavailPath string) ([]config.Unavailability, error) {
	unavail := append([]config.Unavailability(nil), cfg.Unavailability...)
	if unavailPath == "" {
		return unavail, nil
	}
	records, err := excel.ReadUnavailability(unavailPath)
	if err != nil {
		return nil, fmt.Errorf("loading unavailability: %w", err)
	}
	return append(unavail, records...), nil
}
