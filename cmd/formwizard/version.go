package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/formwizard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of formwizard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "formwizard version %s\n", strings.TrimSpace(formwizard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
