// Package cmd implements the sb60calc CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/policyengine/sb60calc/internal/config"
	"github.com/policyengine/sb60calc/internal/model"
	"github.com/policyengine/sb60calc/internal/store"
)

var (
	flagConfig   string
	flagScenario string
	flagQuiet    bool
	flagLogLevel string
	flagNoCache  bool
)

var logLevels = map[string]logrus.Level{
	"trace": logrus.TraceLevel,
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
}

var log = logrus.WithField("module", "cmd")

var rootCmd = &cobra.Command{
	Use:   "sb60calc",
	Short: "Utah SB60 income tax analysis generator",
	Long: "Build the charts and blog post for the Utah SB60 income tax rate cut, " +
		"and inspect the household and statewide figures behind them.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runGenerate,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.Path(), "Config file path")
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario file (.toml, .yaml or .yml); default is the built-in SB60 scenario")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the artifact store and write every file")

	addGenerateFlags(rootCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})

	level, ok := logLevels[strings.ToLower(flagLogLevel)]
	if !ok {
		names := lo.Keys(logLevels)
		sort.Strings(names)
		return fmt.Errorf("--log-level must be one of %s", strings.Join(names, ", "))
	}
	if flagQuiet && level < logrus.WarnLevel {
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)
	return nil
}

func storePath() string {
	return store.Path(config.CacheDir())
}

// loadConfig reads the config file named by --config, with env overrides.
func loadConfig() (config.Config, error) {
	return config.LoadFrom(flagConfig)
}

// scenarioSource returns the scenario path in effect: the --scenario flag,
// then SB60_SCENARIO or the config file. Empty means built-in.
func scenarioSource(cfg config.Config) string {
	if flagScenario != "" {
		return flagScenario
	}
	return cfg.General.ScenarioFile
}

// scenarioName is the label recorded for a run.
func scenarioName(path string) string {
	if path == "" {
		return "builtin:utah-sb60"
	}
	return filepath.Base(path)
}

// loadScenario is the shared loading path: config, then scenario, then the
// curve overrides from config applied to the household parameters.
func loadScenario() (config.Config, model.Scenario, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, model.Scenario{}, "", err
	}

	path := scenarioSource(cfg)
	sc, err := config.LoadScenario(path)
	if err != nil {
		return cfg, sc, "", err
	}
	sc.Household = config.ApplyCurve(sc.Household, cfg.Curve)
	if err := sc.Household.Validate(); err != nil {
		return cfg, sc, "", fmt.Errorf("curve settings in %s: %w", flagConfig, err)
	}

	log.WithField("scenario", scenarioName(path)).Debug("scenario loaded")
	return cfg, sc, scenarioName(path), nil
}
