package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/policyengine/sb60calc/internal/cli"
	"github.com/policyengine/sb60calc/internal/impact"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Key statewide and household figures",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	_, sc, _, err := loadScenario()
	if err != nil {
		return err
	}

	bill, sw, hh := sc.Bill, sc.Statewide, sc.Household

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", bill.ID, bill.Title)))
	fmt.Println()

	rows := [][]string{
		{"Rate", fmt.Sprintf("%s -> %s", cli.FormatRate(bill.CurrentRate), cli.FormatRate(bill.ProposedRate))},
		{"Effective", fmt.Sprintf("tax year %d", bill.Year)},
		cli.Separator,
		{"Revenue impact", cli.FormatMillions(sw.RevenueImpactMillions)},
		{"Residents benefiting", cli.FormatPercent(sw.PercentBenefiting)},
		{"Avg benefit / household", cli.FormatDollars(sw.AvgBenefitPerHousehold)},
		cli.Separator,
		{"Poverty", cli.FormatChange(sw.PovertyImpactPct)},
		{"Deep poverty", cli.FormatChange(sw.DeepPovertyImpactPct)},
		{"Gini index", cli.FormatChange(sw.GiniImpactPct)},
		cli.Separator,
		{"No change up to", cli.FormatDollars(hh.Threshold)},
	}
	for _, income := range []float64{bill.ExampleIncome, hh.High.Income} {
		if income <= 0 {
			continue
		}
		change, err := impact.At(hh, income)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			fmt.Sprintf("At %s earnings", cli.FormatDollars(income)),
			cli.FormatDollars(change),
		})
	}

	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	return nil
}
