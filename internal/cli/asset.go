package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"tailfront/internal/config"
	"tailfront/internal/install"
	"tailfront/internal/manifest"
	"tailfront/internal/project"
	"tailfront/internal/registry"
	"tailfront/internal/report"
	"tailfront/internal/tui"
	"tailfront/internal/tui/styles"
)

// assetFlags are the flags shared by the elements and themes commands
type assetFlags struct {
	overwrite  bool
	deps       bool
	noDeps     bool
	noManifest bool
	cwd        string
	path       string
	registry   string
	manager    string
}

var (
	elementsCmd = buildAssetCommand(registry.KindComponent)
	themesCmd   = buildAssetCommand(registry.KindTheme)
)

// buildAssetCommand creates the install command for one kind of asset
func buildAssetCommand(kind registry.Kind) *cobra.Command {
	f := &assetFlags{}

	cmd := &cobra.Command{
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsset(cmd, kind, f, args)
		},
	}

	switch kind {
	case registry.KindTheme:
		cmd.Use = "themes [themes...]"
		cmd.Short = "Download Tailfront themes"
		cmd.Long = `Download themes from the Tailfront registry.

Each theme is a preset.js and lib.js pair, saved under <path>/<theme>/.

Examples:
  tailfront themes essential
  tailfront themes dark light --path config/themes
  tailfront themes dark --overwrite`
	default:
		cmd.Use = "elements [components...]"
		cmd.Short = "Download Tailfront elements"
		cmd.Long = `Download components from the Tailfront registry.

Each component is saved as <path>/<name>.tsx. Its manifest is printed and
the @npm packages it declares can be installed into your project.

Examples:
  tailfront elements button
  tailfront elements button card dialog --deps
  tailfront elements card --overwrite --cwd ../app`
	}

	cmd.Flags().BoolVarP(&f.overwrite, "overwrite", "o", false, "Overwrite existing files without asking")
	cmd.Flags().BoolVarP(&f.deps, "deps", "d", false, "Install @npm dependencies without asking")
	cmd.Flags().BoolVar(&f.noDeps, "no-deps", false, "Do not check @npm dependencies")
	cmd.Flags().BoolVar(&f.noManifest, "no-manifest", false, "Do not print manifests")
	cmd.Flags().StringVarP(&f.cwd, "cwd", "c", "", "Working directory (default: project root)")
	cmd.Flags().StringVarP(&f.path, "path", "p", "", fmt.Sprintf("Path to save %ss to (default %q)", kind, defaultPath(kind, nil)))
	cmd.Flags().StringVar(&f.registry, "registry", "", "Registry root URL")
	cmd.Flags().StringVar(&f.manager, "package-manager", "", "Package manager to use: npm, pnpm, yarn or bun")
	cmd.MarkFlagsMutuallyExclusive("deps", "no-deps")

	return cmd
}

func runAsset(cmd *cobra.Command, kind registry.Kind, f *assetFlags, args []string) error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rep := report.New(cmd.OutOrStdout(), verbose)
	rep.Progress("Command options are parsed.")

	cwd, err := resolveCwd(f.cwd)
	if err != nil {
		return err
	}
	rep.Progress("Current working directory is resolved: %s", cwd)

	dir, err := resolveDir(cwd, f.path, defaultPath(kind, cfg))
	if err != nil {
		return err
	}
	rep.Progress("%s path is resolved: %s", title(kind), dir)

	logger := newLogger()

	root := f.registry
	if root == "" {
		root = registryRoot(kind, cfg)
	}
	client := registry.NewClient(
		registry.WithRoot(kind, root),
		registry.WithTimeout(time.Duration(cfg.Registry.TimeoutSeconds)*time.Second),
		registry.WithUserAgent("tailfront/"+version),
		registry.WithLogger(logger),
	)

	prompter := tui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	opts := []install.Option{install.WithRenderer(manifestRenderer(prompter.Interactive()))}

	skipDeps := f.noDeps || (cfg.Deps.Disabled && !f.deps)
	if !skipDeps {
		runner, err := newPackageRunner(cmd, cwd, f.manager, cfg, logger)
		if err != nil {
			return err
		}
		projectRoot := runner.Root()
		deps := install.DependencySourceFunc(func() (map[string]struct{}, error) {
			return project.ResolvedDependencies(projectRoot)
		})
		opts = append(opts, install.WithDependencies(deps, runner))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	installer := install.New(client, prompter, rep, opts...)
	summary, err := installer.Run(ctx, args, install.Options{
		Kind:         kind,
		Dir:          dir,
		Overwrite:    f.overwrite,
		AutoDeps:     f.deps || cfg.Deps.AutoInstall,
		SkipDeps:     skipDeps,
		ShowManifest: !f.noManifest,
	})
	if err != nil {
		return err
	}

	rep.Progress("Finished: %d installed, %d skipped, %d not found, %d failed",
		summary.Installed(),
		summary.Count(install.ResultSkippedExisting)+summary.Count(install.ResultSkippedEmpty),
		summary.Count(install.ResultNotFound),
		summary.Count(install.ResultFailed),
	)
	return nil
}

// resolveCwd returns the base directory. Without --cwd it is the project
// root around the process working directory.
func resolveCwd(flag string) (string, error) {
	if flag == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return project.Locate(wd)
	}

	expanded, err := config.ExpandPath(flag)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("path %s does not exist", abs)
	}
	return abs, nil
}

// resolveDir places the install path under cwd unless it is absolute
func resolveDir(cwd, flag, fallback string) (string, error) {
	p := flag
	if p == "" {
		p = fallback
	}
	p, err := config.ExpandPath(p)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Join(cwd, p), nil
}

func defaultPath(kind registry.Kind, cfg *config.Config) string {
	if kind == registry.KindTheme {
		if cfg != nil && cfg.Paths.Themes != "" {
			return cfg.Paths.Themes
		}
		return config.DefaultThemePath
	}
	if cfg != nil && cfg.Paths.Components != "" {
		return cfg.Paths.Components
	}
	return config.DefaultComponentPath
}

func registryRoot(kind registry.Kind, cfg *config.Config) string {
	if kind == registry.KindTheme {
		return cfg.Registry.Themes
	}
	return cfg.Registry.Components
}

func newPackageRunner(cmd *cobra.Command, cwd, flag string, cfg *config.Config, logger *log.Logger) (*project.Runner, error) {
	root, err := project.Locate(cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to locate project: %w", err)
	}

	name := flag
	if name == "" {
		name = cfg.Deps.PackageManager
	}
	m := project.DetectManager(root)
	if name != "" {
		if m, err = project.ParseManager(name); err != nil {
			return nil, err
		}
	}

	return project.NewRunner(root, m,
		project.WithStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
		project.WithLogger(logger),
	), nil
}

// manifestRenderer renders manifests as markdown on a terminal and leaves
// them as plain text otherwise.
func manifestRenderer(tty bool) install.RenderFunc {
	if !tty {
		return func(text string) string { return text }
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}
	return func(text string) string {
		out, err := manifest.Render(text, width-4)
		if err != nil {
			return styles.ManifestBox.Render(text)
		}
		return styles.ManifestBox.Render(out)
	}
}

// IsInterrupt reports whether err means the user stopped the run
func IsInterrupt(err error) bool {
	return errors.Is(err, install.ErrInterrupted) ||
		errors.Is(err, tui.ErrInterrupted) ||
		errors.Is(err, context.Canceled)
}

func title(k registry.Kind) string {
	if k == registry.KindTheme {
		return "Themes"
	}
	return "Components"
}
