package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Manager names a JavaScript package manager
type Manager string

const (
	ManagerNPM  Manager = "npm"
	ManagerPNPM Manager = "pnpm"
	ManagerYarn Manager = "yarn"
	ManagerBun  Manager = "bun"
)

// ErrNoManager is returned when the package manager binary is not on PATH
var ErrNoManager = errors.New("package manager not found")

// lockfiles maps lockfile names to their manager, checked in order
var lockfiles = []struct {
	file    string
	manager Manager
}{
	{pnpmLockFile, ManagerPNPM},
	{"yarn.lock", ManagerYarn},
	{"bun.lockb", ManagerBun},
	{"bun.lock", ManagerBun},
	{npmLockFile, ManagerNPM},
}

// ParseManager validates a package manager name
func ParseManager(s string) (Manager, error) {
	switch m := Manager(strings.ToLower(strings.TrimSpace(s))); m {
	case ManagerNPM, ManagerPNPM, ManagerYarn, ManagerBun:
		return m, nil
	default:
		return "", fmt.Errorf("unknown package manager %q (expected npm, pnpm, yarn or bun)", s)
	}
}

// DetectManager picks the package manager from the lockfile present at
// root, defaulting to npm.
func DetectManager(root string) Manager {
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(root, lf.file)); err == nil {
			return lf.manager
		}
	}
	return ManagerNPM
}

// AddArgs returns the arguments that add one package to the project
func (m Manager) AddArgs(pkg string) []string {
	if m == ManagerNPM {
		return []string{"install", pkg}
	}
	return []string{"add", pkg}
}

// PackageResult is the outcome of installing a single package
type PackageResult struct {
	Name string
	Err  error
}

// OK reports whether the package was installed
func (p PackageResult) OK() bool {
	return p.Err == nil
}

// Runner installs packages by invoking the package manager, one package
// per invocation, attached to the caller's terminal.
type Runner struct {
	root    string
	manager Manager
	binary  string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithBinary overrides the executable invoked for the manager
func WithBinary(path string) RunnerOption {
	return func(r *Runner) {
		r.binary = path
	}
}

// WithStreams sets the standard streams given to the package manager
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner for the project at root
func NewRunner(root string, m Manager, opts ...RunnerOption) *Runner {
	r := &Runner{
		root:    root,
		manager: m,
		binary:  string(m),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the project directory packages are installed into
func (r *Runner) Root() string {
	return r.root
}

// Manager returns the package manager in use
func (r *Runner) Manager() Manager {
	return r.manager
}

// Install adds each package in turn and reports a result per package.
// A failure does not stop the remaining packages.
func (r *Runner) Install(ctx context.Context, names []string) []PackageResult {
	results := make([]PackageResult, 0, len(names))

	bin, lookErr := exec.LookPath(r.binary)
	for _, name := range names {
		if lookErr != nil {
			results = append(results, PackageResult{Name: name, Err: fmt.Errorf("%w: %s", ErrNoManager, r.binary)})
			continue
		}
		if err := ctx.Err(); err != nil {
			results = append(results, PackageResult{Name: name, Err: err})
			continue
		}
		results = append(results, PackageResult{Name: name, Err: r.run(ctx, bin, r.manager.AddArgs(name)...)})
	}

	return results
}

func (r *Runner) run(ctx context.Context, bin string, args ...string) error {
	r.logger.Debug("running package manager", "bin", bin, "args", args, "dir", r.root)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = r.root
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout

	var stderr bytes.Buffer
	cmd.Stderr = io.MultiWriter(r.stderr, &stderr)
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s %s failed: %w\n%s", r.manager, strings.Join(args, " "), err, lastLine(msg))
		}
		return fmt.Errorf("%s %s failed: %w", r.manager, strings.Join(args, " "), err)
	}
	return nil
}

func lastLine(s string) string {
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}
