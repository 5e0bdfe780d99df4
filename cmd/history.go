package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/policyengine/sb60calc/internal/cli"
	"github.com/policyengine/sb60calc/internal/store"
)

var (
	flagLimit int
	flagFiles bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded generate runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "l", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagFiles, "files", false, "Also list files last written by each run")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	dbPath := storePath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("\n  No runs recorded yet. Run `sb60calc generate` first.")
		return nil
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening artifact store: %w", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(flagLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("\n  No runs recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID[:8],
			humanize.Time(r.StartedAt),
			r.Scenario,
			r.OutputDir,
			fmt.Sprintf("%d", r.Written),
			fmt.Sprintf("%d", r.Unchanged),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Generate runs",
		Headers: []string{"Run", "When", "Scenario", "Output", "Written", "Unchanged"},
		Rows:    rows,
	}))

	if !flagFiles {
		return nil
	}
	for _, r := range runs {
		artifacts, err := st.ArtifactsForRun(r.ID)
		if err != nil {
			return fmt.Errorf("listing artifacts for %s: %w", r.ID, err)
		}
		if len(artifacts) == 0 {
			continue
		}
		fmt.Printf("  %s\n", r.ID)
		for _, a := range artifacts {
			fmt.Printf("    %-50s %8s  %s\n", a.Path, humanize.Bytes(uint64(a.SizeBytes)), a.SHA256[:12])
		}
	}
	fmt.Println()
	return nil
}
