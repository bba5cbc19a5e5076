package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/formwizard/internal/cli"
)

var checkCmd = &cobra.Command{
	Use:   "check <definition> <data>",
	Short: "Validate a document against a wizard definition",
	Long: `Mounts the definition over the document without prompting and reports every
validation error of the visible inputs. Exits with status 1 when the document is invalid.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.Check(cli.CheckOptions{
			Definition: args[0],
			Data:       args[1],
			Config:     cfg,
			Out:        cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
