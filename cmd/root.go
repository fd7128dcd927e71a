package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "manuscript",
	Short: "manuscript document store management tool",
	Example: `manuscript db migrate
manuscript purge --retention 720h`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(purgeCmd())
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
}
