package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"tailfront/internal/tui/styles"
)

var (
	verbose bool
	debug   bool
	version = "dev"
)

const (
	bannerName  = "Tailfront"
	bannerEmail = "info@pixsellz.io"
	bannerURL   = "https://pixsellz.io"
)

var rootCmd = &cobra.Command{
	Use:   "tailfront",
	Short: "CLI client for distribution of Tailfront products.",
	Long: `tailfront installs Tailfront elements and themes into your project.

Elements are single-file UI components; themes are a preset.js and lib.js
pair. Files are downloaded from the Tailfront registries, their manifest is
printed, and the @npm packages they declare can be installed for you.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Keep config output clean for scripting
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return
		}
		printBanner(cmd.OutOrStdout())
	},
}

// printBanner writes the two line Tailfront logo
func printBanner(w io.Writer) {
	fmt.Fprintln(w, styles.Logo.Render("    "), "         ", bannerEmail)
	fmt.Fprintln(w, styles.Logo.Render("  tf"), bannerName, bannerURL)
	fmt.Fprintln(w)
}

// newLogger creates the diagnostic logger; it is quiet unless --debug
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "tailfront",
		ReportTimestamp: true,
	})
	logger.SetLevel(log.WarnLevel)
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log registry and package manager activity to stderr")
	rootCmd.Flags().BoolP("version", "v", false, "Display the client version")
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(elementsCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(configCmd)
}
