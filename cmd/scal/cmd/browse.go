package cmd

import (
	"github.com/msto63/scaliger/internal/scaliger/browse"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browses months interactively",
	Long: `Opens an interactive month browser. Use the arrow keys to move by
month and year, r to switch the reform and ? for help.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return browse.Run(svc)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
