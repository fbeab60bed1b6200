package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mccread/internal/reader"
	"mccread/internal/services"
)

func newDetectCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:         "detect <file>",
		Short:       "Check whether a file looks like a MacCaption MCC file",
		Long:        "Checks the magic header only; nothing is decoded and no external tool runs.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return services.Wrap(services.ErrNotFound, "detect", "read file", "file not found", err)
				}
				return fmt.Errorf("read file: %w", err)
			}
			if reader.Detect(content) {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: MCC\n", args[0])
				}
				return nil
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not MCC\n", args[0])
			}
			return services.Wrap(services.ErrValidation, "detect", "sniff", "missing MacCaption_MCC header", nil)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress output; the exit code carries the verdict")
	return cmd
}
