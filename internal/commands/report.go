package commands

import (
	"fmt"
	"io"
	"strconv"

	"depositrecon/internal/summary"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newReportCommand(opts *globalOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the per-bank summary of a fetch date",
		Long:  "Print the per-bank summary of a fetch date. Defaults to the latest date in the store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repository, closeDB, err := opts.openRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			if date == "" {
				latest, ok, err := repository.LatestFetchDate()
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "no deposits stored")
					return nil
				}
				date = latest
			} else if !validDate(date) {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
			}

			deposits, err := repository.FindDepositsByDate(date)
			if err != nil {
				return err
			}

			writeReport(cmd.OutOrStdout(), opts.aggregator().Aggregate(date, deposits))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "fetch date (YYYY-MM-DD)")

	return cmd
}

func writeReport(w io.Writer, report *summary.DailySummary) {
	fmt.Fprintf(w, "Fetch date: %s (%d records", report.FetchDate, report.RecordCount)
	if report.ParseFailures > 0 {
		fmt.Fprintf(w, ", %d unparsable amounts", report.ParseFailures)
	}
	fmt.Fprintln(w, ")")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Bank", "Deposits", "Deductions", "Net"})
	for _, channel := range report.Channels() {
		name := channel
		if name == "" {
			name = "-"
		}
		table.Append([]string{
			name,
			formatAmount(report.Totals[channel]),
			formatAmount(report.Deductions[channel]),
			formatAmount(report.NetTotals[channel]),
		})
	}
	table.SetFooter([]string{
		"Total",
		formatAmount(report.NetAfterDeduction + report.TotalDeductionsAmount),
		formatAmount(report.TotalDeductionsAmount),
		formatAmount(report.TotalNetAmount),
	})
	table.Render()

	types := tablewriter.NewWriter(w)
	types.SetHeader([]string{"Type", "Amount"})
	types.Append([]string{"Auto", formatAmount(report.DepositTypeSummary.Auto)})
	types.Append([]string{"Manual", formatAmount(report.DepositTypeSummary.Manual)})
	types.Append([]string{"Deduction", formatAmount(report.TotalDeductionsAmount)})
	types.Render()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
