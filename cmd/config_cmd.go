package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/policyengine/sb60calc/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", flagConfig)
	if config.Exists(flagConfig) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Output directory: %s%s\n", cfg.General.OutputDir, envNote("SB60_OUTPUT_DIR"))
	scenario := scenarioSource(cfg)
	switch {
	case flagScenario != "":
		fmt.Printf("    Scenario:         %s (from --scenario)\n", scenario)
	case scenario != "":
		fmt.Printf("    Scenario:         %s%s\n", scenario, envNote("SB60_SCENARIO"))
	default:
		fmt.Println("    Scenario:         built-in Utah SB60")
	}
	fmt.Println()

	fmt.Println("  [Publish]")
	fmt.Printf("    Base URL:  %s%s\n", cfg.Publish.BaseURL, envNote("SB60_BASE_URL"))
	fmt.Printf("    Post slug: %s\n", cfg.Publish.PostSlug)
	fmt.Println()

	fmt.Println("  [Curve]")
	fmt.Printf("    Min income: %s\n", optionalInt(cfg.Curve.MinIncome))
	fmt.Printf("    Max income: %s\n", optionalInt(cfg.Curve.MaxIncome))
	fmt.Printf("    Step:       %s\n", optionalInt(cfg.Curve.Step))
	fmt.Println()

	fmt.Printf("  Artifact store: %s\n", storePath())
	fmt.Println()
	fmt.Println("  Run `sb60calc setup` to reconfigure.")
	return nil
}

func envNote(name string) string {
	if os.Getenv(name) != "" {
		return fmt.Sprintf(" (from %s)", name)
	}
	return ""
}

func optionalInt(v *int64) string {
	if v == nil {
		return "scenario default"
	}
	return strconv.FormatInt(*v, 10)
}
