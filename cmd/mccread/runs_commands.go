package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mccread/internal/runstore"
	"mccread/internal/services"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded decode runs",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsClearCommand(ctx))

	return runsCmd
}

func (c *commandContext) openRunStore() (*runstore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Runs.Enabled {
		return nil, services.Wrap(services.ErrConfiguration, "runs", "open store",
			"run history is disabled; enable [runs] in the configuration", nil)
	}
	return runstore.Open(cfg)
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded decode runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openRunStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if !renderAsTable(cmd, jsonFlag) {
				return writeJSON(cmd, runs)
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.InputFile,
					string(run.Status),
					run.Formats,
					strconv.Itoa(run.TrackCount),
					strconv.Itoa(run.EventCount),
					run.CreatedAt.Local().Format(time.RFC3339),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Input", "Status", "Formats", "Tracks", "Events", "Started"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Force JSON output")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded decode run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openRunStore()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return services.Wrap(services.ErrNotFound, "runs", "show", fmt.Sprintf("no run with id %s", args[0]), nil)
			}
			return writeJSON(cmd, run)
		},
	}
	return cmd
}

func newRunsClearCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded decode runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openRunStore()
			if err != nil {
				return err
			}
			defer store.Close()

			cleared, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d run(s)\n", cleared)
			return nil
		},
	}
	return cmd
}
