package cmd

import (
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the beat store HTTP server",
	Long:  `Start the HTTP server that syncs the beats folder into the catalog and serves the JSON API, audio streaming and the storefront UI.`,
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
