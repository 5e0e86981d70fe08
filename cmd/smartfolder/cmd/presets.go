package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focusdeck/smartfolder/internal/rules"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in preset rule sets",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	for _, folder := range rules.Presets() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %2d rules  %s\n",
			folder.Name, len(folder.Rules), folder.Description)
	}
	return nil
}
