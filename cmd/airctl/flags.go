package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/airtab/internal/tabledef"
	"github.com/faciam-dev/airtab/pkg/config"
	"github.com/faciam-dev/airtab/sdk"
)

func activeProfile(cmd *cobra.Command) (config.Profile, error) {
	f, err := config.Load()
	if err != nil {
		return config.Profile{}, err
	}
	name, _ := cmd.Flags().GetString("profile")
	if name == "" {
		name = f.Active
	}
	p := f.Profiles[name]
	if tok, _ := cmd.Flags().GetString("token"); tok != "" {
		p.Token = tok
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		p.APIURL = u
	}
	if p.Token == "" {
		return config.Profile{}, fmt.Errorf("no API token configured; run `airctl login` or pass --token")
	}
	return p, nil
}

func serviceFromFlags(cmd *cobra.Command) (sdk.Service, error) {
	p, err := activeProfile(cmd)
	if err != nil {
		return nil, err
	}
	return sdk.New(sdk.ServiceConfig{Token: p.Token, BaseURL: p.APIURL}), nil
}

func tableFromFlags(cmd *cobra.Command, name string) (*sdk.Table, error) {
	path, _ := cmd.Flags().GetString("defs")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table definitions: %w", err)
	}
	tables, err := tabledef.DecodeYAML(b)
	if err != nil {
		return nil, err
	}
	for i := range tables {
		if tables[i].Name == name || tables[i].TableID == name {
			return &tables[i], nil
		}
	}
	return nil, fmt.Errorf("table %q not declared in %s", name, path)
}
