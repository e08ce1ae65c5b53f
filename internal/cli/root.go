package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var quietFlag bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "extract-code",
	Short: "Entry-point-driven Python dependency extraction",
	Long: `extract-code statically analyzes a Python project from one entry file,
follows its import statements to every reachable project-local file, and
writes a single consolidated artifact containing only the symbols that are
actually used. No analyzed code is ever executed.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress progress and diagnostic output")
}
