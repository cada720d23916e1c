package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jscn version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jscn %s (%s)\n", Version, Commit)
	},
}
