package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <table> <record-id>",
		Short: "Fetch one record as typed fields",
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
			rec, err := svc.Get(cmd.Context(), def, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "id\t%s\n", rec.ID)
			for _, f := range def.Schema {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%v\n", f.Name, rec.Fields[f.Name])
			}
			return nil
		},
	}
	return cmd
}
