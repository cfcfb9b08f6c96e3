package main

import (
	"context"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/faciam-dev/airtab/internal/remoteapi"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <base-id>",
		Short: "Print the remote schema of a base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := activeProfile(cmd)
			if err != nil {
				return err
			}
			opts := []remoteapi.Option{}
			if p.APIURL != "" {
				opts = append(opts, remoteapi.WithBaseURL(p.APIURL))
			}
			client := remoteapi.New(p.Token, opts...)
			tables, err := client.FetchBaseSchema(context.Background(), args[0])
			if err != nil {
				return err
			}
			w := tablewriter.NewWriter(cmd.OutOrStdout())
			w.SetHeader([]string{"Table", "Column", "ID", "Type"})
			for _, t := range tables {
				for _, c := range t.Columns {
					w.Append([]string{t.Name, c.Name, c.ID, c.Type})
				}
			}
			w.Render()
			return nil
		},
	}
	return cmd
}
