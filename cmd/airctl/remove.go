package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <table> <record-id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFromFlags(cmd)
			if err != nil {
				return err
			}
			def, err := tableFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			if err := svc.Remove(cmd.Context(), def, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[1])
			return nil
		},
	}
	return cmd
}
