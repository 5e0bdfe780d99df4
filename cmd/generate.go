package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/policyengine/sb60calc/internal/cli"
	"github.com/policyengine/sb60calc/internal/pipeline"
	"github.com/policyengine/sb60calc/internal/store"
)

var (
	flagOut   string
	flagForce bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the chart pages and the markdown post",
	RunE:  runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

// addGenerateFlags is shared by generate and the root command, which runs
// generate by default.
func addGenerateFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagOut, "out", "o", "", "Output directory (default from config)")
	c.Flags().BoolVar(&flagForce, "force", false, "Rewrite files even when unchanged")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, sc, name, err := loadScenario()
	if err != nil {
		return err
	}

	outDir := cfg.General.OutputDir
	if cmd.Flags().Changed("out") {
		outDir = flagOut
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := pipeline.Options{
		Scenario:     sc,
		ScenarioName: name,
		OutputDir:    outDir,
		BaseURL:      cfg.Publish.BaseURL,
		PostSlug:     cfg.Publish.PostSlug,
		Force:        flagForce,
		Log:          log.WithField("module", "pipeline"),
	}

	if !flagNoCache {
		st, err := store.Open(storePath())
		if err != nil {
			log.WithError(err).Warn("artifact store unavailable, writing all files")
		} else {
			defer st.Close()
			opts.Store = st
		}
	}

	res, err := pipeline.Generate(ctx, opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if flagQuiet {
		return nil
	}

	rows := make([][]string, 0, len(res.Artifacts))
	for _, a := range res.Artifacts {
		rows = append(rows, []string{a.Path, string(a.Status), humanize.Bytes(uint64(a.Bytes))})
	}
	fmt.Println()
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Generated %d of %d files", res.Count(pipeline.StatusWritten), len(res.Artifacts)),
		Headers: []string{"Path", "Status", "Size"},
		Rows:    rows,
	}))
	fmt.Printf("  %s curve samples, run %s\n\n", humanize.Comma(int64(res.Samples)), res.RunID)
	return nil
}
