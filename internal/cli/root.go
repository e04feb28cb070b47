package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dvkit/internal/config"
	"dvkit/internal/version"
)

var (
	serverFlag string
	verbose    bool
	insecure   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dvkit",
	Short: "dvkit - query Dataverse research-data repositories",
	Long: `dvkit queries Dataverse research-data repositories: search for
dataverses, datasets and files, inspect server info and metadata blocks,
and browse the public directory of known installations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if it exists
		config.LoadEnvFile(".env")

		if verbose {
			fmt.Printf("dvkit version: %s\n", version.Current)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "configured server name or hostname to query")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "skip TLS certificate verification")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(installationsCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(authCmd)
}
