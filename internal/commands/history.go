package commands

import (
	"fmt"
	"strconv"
	"time"

	"depositrecon/internal/service"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newHistoryCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List stored fetch dates with their record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repository, closeDB, err := opts.openRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			counts, err := repository.CountDepositsByDate()
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no deposits stored")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Fetch date", "Records"})
			for _, c := range counts {
				table.Append([]string{c.FetchDate, strconv.FormatInt(c.Count, 10)})
			}
			table.Render()
			return nil
		},
	}
}

func newPurgeCommand(opts *globalOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every stored deposit of a fetch date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !validDate(date) {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
			}

			repository, closeDB, err := opts.openRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			deleted, err := repository.DeleteDepositsByDate(date)
			if err != nil {
				return err
			}
			opts.logger.Info("purged deposits", "date", date, "deleted", deleted)
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d deposits for %s\n", deleted, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "fetch date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func validDate(date string) bool {
	_, err := time.Parse(service.DateLayout, date)
	return err == nil
}
