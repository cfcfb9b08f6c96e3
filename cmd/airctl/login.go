package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/airtab/pkg/config"
)

func newLoginCmd() *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:   "login <token>",
		Short: "Store an API token in the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.Load()
			if err != nil {
				return err
			}
			name := profile
			if name == "" {
				name = f.Active
			}
			p := f.Profiles[name]
			p.Name = name
			p.Token = args[0]
			if u, _ := cmd.Flags().GetString("api-url"); u != "" {
				p.APIURL = u
			}
			f.Profiles[name] = p
			f.Active = name
			if err := config.Save(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile %s saved\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&profile, "as", "", "profile name to save under")
	return cmd
}
