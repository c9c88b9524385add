package commands

import (
	"context"
	"fmt"
	"time"

	"depositrecon/internal/models"
	"depositrecon/internal/repo"
	"depositrecon/internal/service"
	"depositrecon/pkg/integrations/settlement"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newFetchCommand(opts *globalOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one day of deposits from the settlement API",
		Long:  "Fetch one day of deposits and merge them into the store. Defaults to yesterday in the schedule timezone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date == "" {
				date = time.Now().In(opts.location()).AddDate(0, 0, -1).Format(service.DateLayout)
			}

			repository, closeDB, err := opts.openRepository()
			if err != nil {
				return err
			}
			defer closeDB()

			svc, err := newFetchService(cmd.Context(), opts, repository)
			if err != nil {
				return err
			}

			count, err := svc.FetchAndStore(cmd.Context(), date, models.FetchTriggerManual)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "fetched %d deposits for %s\n", count, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "fetch date (YYYY-MM-DD)")

	return cmd
}

func newFetchService(ctx context.Context, opts *globalOptions, repository *repo.Repository, extra ...service.FetchOption) (*service.FetchService, error) {
	if opts.cfg.Settlement.BaseURL == "" {
		return nil, errors.New("settlement base_url is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client := settlement.NewClient(opts.cfg.Settlement.BaseURL)
	client.Client.Timeout = opts.cfg.Settlement.Timeout

	fetchOpts := []service.FetchOption{
		service.WithFetchContext(ctx),
		service.WithFetchLogger(opts.logger),
		service.WithFetchFetcher(client),
		service.WithFetchRepo(repository),
		service.WithFetchCredentials(service.Credentials{
			Username: opts.cfg.Settlement.Username,
			Password: opts.cfg.Settlement.Password,
			Prefix:   opts.cfg.Settlement.Prefix,
		}),
		service.WithFetchTimeout(opts.cfg.Settlement.Timeout),
		service.WithFetchSchedule(opts.cfg.Schedule.Hour, opts.cfg.Schedule.Minute),
		service.WithFetchLocation(opts.location()),
	}

	return service.NewFetchService(append(fetchOpts, extra...)...)
}
