package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{Use: "airctl", Short: "Typed access to remote bases"}

func init() {
	rootCmd.PersistentFlags().String("token", "", "API token (overrides profile)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides profile)")
	rootCmd.PersistentFlags().String("profile", "", "Profile name in config (overrides active)")
	rootCmd.PersistentFlags().String("defs", "tables.yaml", "Table definition file")

	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newLoginCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
