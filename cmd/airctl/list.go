package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/faciam-dev/airtab/sdk"
)

func newListCmd() *cobra.Command {
	var filter, view, sortBy string
	var max int
	var desc bool
	cmd := &cobra.Command{
		Use:   "list <table>",
		Short: "List records of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := serviceFromFlags(cmd)
			if err != nil {
				return err
			}
			def, err := tableFromFlags(cmd, args[0])
			if err != nil {
				return err
			}
			q := sdk.ListQuery{
				FilterByFormula: filter,
				MaxRecords:      max,
				View:            view,
			}
			if sortBy != "" {
				dir := ""
				if desc {
					dir = "desc"
				}
				q.Sort = []sdk.Sort{{Field: sortBy, Direction: dir}}
			}
			recs, err := svc.Scan(cmd.Context(), def, q)
			if err != nil {
				return err
			}
			w := tablewriter.NewWriter(cmd.OutOrStdout())
			header := []string{"id"}
			for _, f := range def.Schema {
				header = append(header, f.Name)
			}
			w.SetHeader(header)
			for _, r := range recs {
				row := []string{r.ID}
				for _, f := range def.Schema {
					row = append(row, fmt.Sprintf("%v", r.Fields[f.Name]))
				}
				w.Append(row)
			}
			w.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "filter formula passed through verbatim")
	cmd.Flags().StringVar(&view, "view", "", "remote view name")
	cmd.Flags().StringVar(&sortBy, "sort", "", "remote column to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&max, "max", 0, "maximum records to fetch")
	return cmd
}
