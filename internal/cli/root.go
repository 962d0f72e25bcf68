package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "structmap",
	Short: "Structmap - structural index generator for Python projects",
	Long: `Structmap scans a Django-style Python project, parses every source
file, and writes a JSON document describing the project's declaration
topology: apps, files, functions, classes with their methods, and
import statements, all with exact source locations.`,
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
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report skipped and unparsable files")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
