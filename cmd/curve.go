package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/policyengine/sb60calc/internal/cli"
	"github.com/policyengine/sb60calc/internal/impact"
)

// defaultCurveRows is how many table rows --every picks when unset.
const defaultCurveRows = 40

var (
	flagMinIncome int64
	flagMaxIncome int64
	flagStep      int64
	flagEvery     int
	flagCSV       bool
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the household net income change curve",
	RunE:  runCurve,
}

func init() {
	curveCmd.Flags().Int64Var(&flagMinIncome, "min", 0, "Lowest employment income")
	curveCmd.Flags().Int64Var(&flagMaxIncome, "max", 0, "Highest employment income")
	curveCmd.Flags().Int64Var(&flagStep, "step", 0, "Income step between samples")
	curveCmd.Flags().IntVar(&flagEvery, "every", 0, "Print every Nth sample (default: about 40 rows; CSV prints all)")
	curveCmd.Flags().BoolVar(&flagCSV, "csv", false, "Write CSV to stdout")
	rootCmd.AddCommand(curveCmd)
}

func runCurve(cmd *cobra.Command, _ []string) error {
	_, sc, _, err := loadScenario()
	if err != nil {
		return err
	}

	p := sc.Household
	if cmd.Flags().Changed("min") {
		p.MinIncome = flagMinIncome
	}
	if cmd.Flags().Changed("max") {
		p.MaxIncome = flagMaxIncome
	}
	if cmd.Flags().Changed("step") {
		p.Step = flagStep
	}
	if flagEvery < 0 {
		return errors.New("--every must be positive")
	}

	points, err := impact.Curve(p)
	if err != nil {
		return err
	}

	every := flagEvery
	if every == 0 {
		every = 1
		if !flagCSV {
			every = max(len(points)/defaultCurveRows, 1)
		}
	}

	if flagCSV {
		return writeCurveCSV(points, every)
	}

	rows := make([][]string, 0, len(points)/every+1)
	for i, pt := range points {
		if i%every != 0 && i != len(points)-1 {
			continue
		}
		rows = append(rows, []string{cli.FormatIncome(pt.Income), cli.FormatDollars(pt.Impact)})
	}

	values := make([]float64, len(points))
	for i, pt := range points {
		values[i] = pt.Impact
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(sc.Bill.ID + "  Change in net income, single adult"))
	fmt.Println()
	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Employment income", "Change"},
		Rows:    rows,
	}))
	fmt.Printf("  %s\n", cli.RenderSparkline(cli.Downsample(values, 55), -1))
	fmt.Printf("  %d samples, no change up to %s, slope %s per $1,000\n\n",
		len(points),
		cli.FormatDollars(p.Threshold),
		cli.FormatDollars(p.Slope()*1000),
	)
	return nil
}

func writeCurveCSV(points []impact.Point, every int) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"employment_income", "net_income_change"}); err != nil {
		return err
	}
	for i, pt := range points {
		if i%every != 0 && i != len(points)-1 {
			continue
		}
		rec := []string{
			strconv.FormatInt(pt.Income, 10),
			strconv.FormatFloat(pt.Impact, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
