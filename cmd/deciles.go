package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/policyengine/sb60calc/internal/cli"
	"github.com/policyengine/sb60calc/internal/pipeline"
)

const shareBarWidth = 30

var decilesCmd = &cobra.Command{
	Use:   "deciles",
	Short: "Winners and average benefit by income decile",
	RunE:  runDeciles,
}

func init() {
	rootCmd.AddCommand(decilesCmd)
}

func runDeciles(_ *cobra.Command, _ []string) error {
	_, sc, _, err := loadScenario()
	if err != nil {
		return err
	}

	rows := pipeline.DecileRows(sc.Statewide)
	sum := pipeline.SummarizeDeciles(rows)

	peak := 0.0
	for _, r := range rows {
		peak = max(peak, r.AvgImpact)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(sc.Bill.ID + "  Impact by income decile"))
	fmt.Println()

	shareRows := [][]string{
		{"All", cli.FormatPercent(sc.Statewide.AllOutcome.Gainers()), cli.RenderShareBar(sc.Statewide.AllOutcome, shareBarWidth)},
		cli.Separator,
	}
	for _, r := range rows {
		shareRows = append(shareRows, []string{r.Label, cli.FormatPercent(r.Outcome.Gainers()), cli.RenderShareBar(r.Outcome, shareBarWidth)})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Winners and losers",
		Headers: []string{"Decile", "Gain", "Share of people"},
		Rows:    shareRows,
	}))
	fmt.Println(cli.Legend())
	fmt.Println()

	benefitRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		benefitRows = append(benefitRows, []string{r.Label, cli.FormatDollars(r.AvgImpact), cli.RenderBar(r.AvgImpact, peak, 20)})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Average change in household net income",
		Headers: []string{"Decile", "Change", ""},
		Rows:    benefitRows,
	}))

	fmt.Printf("  Mean across deciles %s, anyone gains in %d of %d deciles\n",
		cli.FormatDollars(sum.MeanAvgImpact), sum.DecilesBenefit, len(rows))
	fmt.Printf("  Most gainers in decile %s (%s), fewest in decile %s (%s)\n",
		sum.MostGainers.Label, cli.FormatPercent(sum.MostGainers.Outcome.Gainers()),
		sum.FewestGainers.Label, cli.FormatPercent(sum.FewestGainers.Outcome.Gainers()))
	if sum.TopToBottomRatio != 0 {
		fmt.Printf("  Top decile gains %.0fx the bottom decile\n", sum.TopToBottomRatio)
	}
	fmt.Println()
	return nil
}
