package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/formwizard/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "formwizard",
	Short: "formwizard runs multi-step form wizards in the terminal",
	Long: `formwizard edits a YAML or JSON document through the steps of a wizard definition,
validating every input and refusing to advance past a step with errors.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration with the flags of cmd bound to it.
func loadConfig(cmd *cobra.Command) (cli.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return cli.LoadConfig(path, cmd.Flags())
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./formwizard.yaml, ~/.config/formwizard/formwizard.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log to stderr at this level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("strings", "", "YAML file overriding the interface strings")
	rootCmd.PersistentFlags().String("format", "yaml", "Document format (yaml or json)")
}
