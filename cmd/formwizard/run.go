package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/formwizard/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <definition>",
	Short: "Run a wizard interactively",
	Long: `Starts the wizard described by a definition file. The submitted document is
written to stdout, or to --out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, _ := cmd.Flags().GetString("data")
		out, _ := cmd.Flags().GetString("out")
		headless, _ := cmd.Flags().GetBool("headless")

		return cli.Execute(cmd.Context(), cli.RunOptions{
			Definition: args[0],
			Data:       data,
			Out:        out,
			Headless:   headless,
			Config:     cfg,
			Stdin:      cmd.InOrStdin(),
			Stdout:     cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("data", "d", "", "Initial document (YAML or JSON)")
	runCmd.Flags().StringP("out", "o", "", "Write the submitted document to this file")
	runCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, no prompts, plain output)")
	runCmd.Flags().String("metrics-addr", "", "Serve prometheus metrics on this address (e.g. :2112)")
}
