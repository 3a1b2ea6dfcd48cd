package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tailfront/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tailfront configuration",
	Long: `View and modify tailfront configuration settings.

The config file lives at ~/.tailfront/config.toml unless $TAILFRONT_CONFIG
points elsewhere. Command line flags take precedence over it.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in editor",
	RunE:  runConfigEdit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	manager := cfg.Deps.PackageManager
	if manager == "" {
		manager = "(detect)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "  config_file: %s\n", cfg.ConfigPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Registry:")
	fmt.Fprintf(out, "  components: %s\n", cfg.Registry.Components)
	fmt.Fprintf(out, "  themes:     %s\n", cfg.Registry.Themes)
	fmt.Fprintf(out, "  timeout:    %ds\n", cfg.Registry.TimeoutSeconds)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Paths:")
	fmt.Fprintf(out, "  components: %s\n", cfg.Paths.Components)
	fmt.Fprintf(out, "  themes:     %s\n", cfg.Paths.Themes)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dependencies:")
	fmt.Fprintf(out, "  auto_install:    %t\n", cfg.Deps.AutoInstall)
	fmt.Fprintf(out, "  disabled:        %t\n", cfg.Deps.Disabled)
	fmt.Fprintf(out, "  package_manager: %s\n", manager)

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cfg.ConfigPath)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(cfg.ConfigPath); os.IsNotExist(err) {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}

	process, err := os.StartProcess("/usr/bin/env", []string{"env", editor, cfg.ConfigPath}, &proc)
	if err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}

	_, err = process.Wait()
	return err
}
