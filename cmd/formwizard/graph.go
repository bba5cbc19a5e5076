package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/formwizard/internal/cli"
)

var graphCmd = &cobra.Command{
	Use:   "graph <definition> [data]",
	Short: "Export the wizard steps as a Mermaid diagram",
	Long: `Mounts the definition (over the optional data file) and outputs a Mermaid diagram
(graph TD) of its steps, marking the hidden ones.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts := cli.GraphOptions{
			Definition: args[0],
			Config:     cfg,
			Out:        cmd.OutOrStdout(),
		}
		if len(args) > 1 {
			opts.Data = args[1]
		}
		return cli.Graph(opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
