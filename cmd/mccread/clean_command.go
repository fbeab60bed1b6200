package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mccread/internal/workspace"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAge time.Duration
	var list bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale run directories from the work directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if list {
				dirs, err := workspace.ListDirectories(cfg.Paths.WorkDir)
				if err != nil {
					return fmt.Errorf("list run directories: %w", err)
				}
				if len(dirs) == 0 {
					fmt.Fprintln(out, "No run directories found")
					return nil
				}
				rows := make([][]string, 0, len(dirs))
				for _, dir := range dirs {
					rows = append(rows, []string{
						dir.Name,
						dir.ModTime.Local().Format(time.RFC3339),
						fmt.Sprintf("%d", dir.Size),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Directory", "Modified", "Bytes"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				return nil
			}

			result := workspace.CleanStale(cmd.Context(), cfg.Paths.WorkDir, maxAge, nil)
			fmt.Fprintf(out, "Removed %d run director%s\n", len(result.Removed), plural(len(result.Removed), "y", "ies"))
			for _, cleanErr := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to remove %s: %v\n", cleanErr.Path, cleanErr.Error)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d director(ies) could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 24*time.Hour, "Remove run directories older than this")
	cmd.Flags().BoolVar(&list, "list", false, "List run directories instead of removing them")
	return cmd
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
