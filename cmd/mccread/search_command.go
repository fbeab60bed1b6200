package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var opts decodeOptions
	var limit int
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "search <file.mcc> <query>",
		Short: "Decode an MCC file and search its caption text",
		Long: `Search ranks caption events against the query by term overlap,
weighted so words shared by every caption line count for less. The best
matches are printed first with their similarity score.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.decode(cmd, args[0], opts)
			if err != nil {
				return err
			}
			matches := result.Search(args[1], limit)
			if !renderAsTable(cmd, jsonFlag) {
				return writeJSON(cmd, matches)
			}

			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{
					fmt.Sprintf("%.2f", m.Score),
					m.Format,
					m.Track,
					m.Event.StartTimecode,
					strings.ReplaceAll(m.Event.Text, "\n", " / "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Score", "Format", "Track", "Start", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	addDecodeFlags(cmd, &opts)
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of matches (0 for all)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Force JSON output")
	return cmd
}
