package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReadCommand(ctx *commandContext) *cobra.Command {
	var opts decodeOptions

	cmd := &cobra.Command{
		Use:   "read <file.mcc>",
		Short: "Decode an MCC file and print the full caption result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.decode(cmd, args[0], opts)
			if err != nil {
				return err
			}
			data, err := result.EncodeJSON()
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	addDecodeFlags(cmd, &opts)
	return cmd
}
