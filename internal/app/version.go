package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the statsvy version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("statsvy %s (%s/%s)\n", appVersion, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
