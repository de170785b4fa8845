package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show paths used by the application",
	Example: `  # Show all application paths
  ytsubs paths`,
	Run: func(cmd *cobra.Command, args []string) {
		scratchDir := config.ScratchDir
		if scratchDir == "" {
			scratchDir = os.TempDir()
		}

		fmt.Printf("Config directory: %s\n", config.ConfigDir)
		fmt.Printf("Cache directory: %s\n", config.CacheDir)
		fmt.Printf("Log file: %s\n", config.LogPath)
		fmt.Printf("Scratch directory: %s\n", scratchDir)
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
