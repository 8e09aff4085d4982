package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bloomviewer/internal/client"
	"bloomviewer/internal/fixtures"
	"bloomviewer/internal/models"
	"bloomviewer/internal/selection"
)

type statsOptions struct {
	apiURL   string
	token    string
	seedFile string
	query    string
	selected []int
	timeout  time.Duration
}

func statsCommand() *cobra.Command {
	var opts statsOptions

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print location counts per overlay and a selection summary",
		Long: `Fetches overlays with their location counts, either from a running API (--api)
or from the seed data, and prints them alongside a summary of the selected overlays.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
			defer cancel()
			return runStats(ctx, cmd.OutOrStdout(), api, opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api", "", "API base URL, e.g. http://localhost:8780/api/v1 (default: seed data)")
	cmd.Flags().StringVar(&opts.token, "token", "", "Bearer token sent to the API")
	cmd.Flags().StringVar(&opts.seedFile, "seed", "", "Seed file used when --api is not set (default: embedded seed)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Only show overlays whose name contains this text")
	cmd.Flags().IntSliceVarP(&opts.selected, "select", "s", nil, "Overlay ids to select")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	return cmd
}

func (o statsOptions) client() (client.LocationAPI, error) {
	if o.apiURL != "" {
		return client.NewHTTPClient(o.apiURL, o.token, o.timeout, zap.NewNop()), nil
	}
	seed, err := fixtures.Load(o.seedFile)
	if err != nil {
		return nil, err
	}
	return client.NewMockClient(seed), nil
}

func runStats(ctx context.Context, out io.Writer, api client.LocationAPI, opts statsOptions) error {
	overlays, err := api.ListOverlays(ctx)
	if err != nil {
		return fmt.Errorf("list overlays: %w", err)
	}

	sel := selection.New(overlays)
	sel.Search(opts.query)
	known := make(map[int]bool, len(overlays))
	for _, o := range overlays {
		known[o.ID] = true
	}
	for _, id := range opts.selected {
		if known[id] && !sel.IsSelected(id) {
			sel.Toggle(id)
		}
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEL\tID\tOVERLAY\tLOCATIONS\tSEASON")
	for _, o := range sel.Candidates() {
		mark := ""
		if sel.IsSelected(o.ID) {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\n", mark, o.ID, o.Name, o.LocationCount, season(o.MapOverlay))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sum := sel.Summary()
	fmt.Fprintf(out, "\n%d overlay(s) selected, %d location(s)\n", sum.SelectedCount, sum.LocationCount)
	return nil
}

func season(o models.MapOverlay) string {
	if o.StartDate == "" && o.EndDate == "" {
		return "-"
	}
	return strings.TrimSpace(o.StartDate + " .. " + o.EndDate)
}
