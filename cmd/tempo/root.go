// The tempo command inspects recording databases produced by journaled
// timeline sessions.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Tempo CLI tool inspects recorded timeline sessions.",
	Long: `Tempo CLI tool inspects the SQLite recordings written by journaled ` +
		`timeline sessions. It can list the tables of a recording and dump ` +
		`the event firings and tween samples of a run.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
