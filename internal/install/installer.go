// Package install drives the fetch, plan, write and dependency steps for
// every asset named on the command line, one file at a time.
package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tailfront/internal/manifest"
	"tailfront/internal/project"
	"tailfront/internal/registry"
)

// ErrInterrupted is returned when the run is cancelled part way through.
// Files already written are left in place.
var ErrInterrupted = errors.New("installation interrupted")

// Fetcher downloads registry files
type Fetcher interface {
	Fetch(ctx context.Context, res registry.Resource) registry.FetchResult
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// DependencySource lists the packages the project already resolves
type DependencySource interface {
	ResolvedDependencies() (map[string]struct{}, error)
}

// DependencySourceFunc adapts a function to DependencySource
type DependencySourceFunc func() (map[string]struct{}, error)

// ResolvedDependencies calls f
func (f DependencySourceFunc) ResolvedDependencies() (map[string]struct{}, error) {
	return f()
}

// PackageInstaller installs packages into the project
type PackageInstaller interface {
	Install(ctx context.Context, names []string) []project.PackageResult
}

// Reporter receives the user facing status lines
type Reporter interface {
	OK(format string, args ...any)
	Progress(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Failed(format string, args ...any)
	Block(text string)
}

// RenderFunc turns humanized manifest text into what is printed
type RenderFunc func(text string) string

// Options control a single run
type Options struct {
	Kind         registry.Kind
	Dir          string // install directory; registry files are placed relative to it
	Overwrite    bool   // replace existing files without asking
	AutoDeps     bool   // install missing packages without asking
	SkipDeps     bool   // never look at @npm dependencies
	ShowManifest bool
}

// Installer installs registry assets into a project
type Installer struct {
	fetcher  Fetcher
	confirm  Confirmer
	report   Reporter
	deps     DependencySource
	packages PackageInstaller
	render   RenderFunc
}

// Option configures an Installer
type Option func(*Installer)

// WithDependencies enables dependency reconciliation against src, installing
// what is missing through pkgs.
func WithDependencies(src DependencySource, pkgs PackageInstaller) Option {
	return func(in *Installer) {
		in.deps = src
		in.packages = pkgs
	}
}

// WithRenderer sets how manifests are rendered for display
func WithRenderer(fn RenderFunc) Option {
	return func(in *Installer) {
		in.render = fn
	}
}

// New creates an installer
func New(f Fetcher, c Confirmer, r Reporter, opts ...Option) *Installer {
	in := &Installer{
		fetcher: f,
		confirm: c,
		report:  r,
		render:  func(text string) string { return text },
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// run carries the state of one Run call
type run struct {
	opts      Options
	summary   *Summary
	installed map[string]struct{} // packages installed during this run
}

// Run installs names in the order given. Per-file problems are reported
// and recorded in the summary; an error is returned only when the run is
// interrupted or a prompt cannot be answered.
func (in *Installer) Run(ctx context.Context, names []string, opts Options) (*Summary, error) {
	r := &run{
		opts:      opts,
		summary:   &Summary{},
		installed: make(map[string]struct{}),
	}

	if len(names) == 0 {
		in.report.Info("No %ss are listed.", opts.Kind)
		return r.summary, nil
	}

	for _, name := range names {
		if ctx.Err() != nil {
			return r.summary, interrupted(ctx)
		}
		if err := in.installAsset(ctx, r, name); err != nil {
			return r.summary, err
		}
	}

	return r.summary, nil
}

func (in *Installer) installAsset(ctx context.Context, r *run, name string) error {
	kind := r.opts.Kind
	in.report.Progress("Start downloading %s: %s", kind, name)

	if err := registry.ValidateName(name); err != nil {
		in.report.Failed("Invalid %s name: %q", kind, name)
		r.summary.add(Outcome{Name: name, Result: ResultFailed, Err: err})
		return nil
	}

	resources := registry.Resources(kind, name)
	for i, res := range resources {
		in.report.Progress("Fetch registry for %s: %s", kind, res.File)
		fetched := in.fetcher.Fetch(ctx, res)
		if ctx.Err() != nil {
			return interrupted(ctx)
		}

		switch fetched.Status {
		case registry.StatusNotFound:
			in.report.Failed("%s not found: %s", title(kind), res.Label())
			r.summary.add(Outcome{Name: name, File: res.File, Result: ResultNotFound})
		case registry.StatusTransportError:
			in.report.Failed("Unable to download %s %s: %v", kind, res.Label(), fetched.Err)
			r.summary.add(Outcome{Name: name, File: res.File, Result: ResultFailed, Err: fetched.Err})
			if rest := len(resources) - i - 1; rest > 0 {
				in.report.Warn("Skipped the remaining files of %s %s.", kind, name)
			}
			return nil
		default:
			in.report.Progress("Successfully downloaded: %s", res.Label())
			if kind == registry.KindTheme {
				themeDir := filepath.Join(r.opts.Dir, filepath.FromSlash(name))
				if err := os.MkdirAll(themeDir, 0755); err != nil {
					in.report.Failed("Unable to create theme directory %s: %v", themeDir, err)
					r.summary.add(Outcome{Name: name, File: res.File, Result: ResultFailed, Err: err})
					continue
				}
			}
			if err := in.installFile(ctx, r, res, fetched.Body); err != nil {
				return err
			}
		}
	}

	return nil
}

func (in *Installer) installFile(ctx context.Context, r *run, res registry.Resource, body []byte) error {
	path := filepath.Join(r.opts.Dir, filepath.FromSlash(res.File))
	outcome := Outcome{Name: res.Name, File: res.File}

	plan, err := Plan(path, r.opts.Overwrite, body)
	if err != nil {
		in.report.Failed("Unable to check %s: %v", res.Label(), err)
		outcome.Result, outcome.Err = ResultFailed, err
		r.summary.add(outcome)
		return nil
	}

	if plan.Action == ActionAsk {
		in.report.Progress("Overwrite option check: %s", res.Label())
		ok, err := in.confirm.Confirm(ctx, fmt.Sprintf("%s already exists. Do you want to overwrite?", res.File))
		if err != nil {
			return confirmError(ctx, err)
		}
		if !ok {
			in.report.Info("Skipped %s. To overwrite, run with the --overwrite flag.", res.Label())
			outcome.Result = ResultSkippedExisting
			r.summary.add(outcome)
			return nil
		}
		plan.Action = ActionWrite
	}

	if plan.Action == ActionSkip {
		in.report.Warn("Skipped empty %s: %s", r.opts.Kind, res.Label())
		outcome.Result = ResultSkippedEmpty
		r.summary.add(outcome)
		return nil
	}

	if err := WriteAsset(plan.Path, body); err != nil {
		in.report.Failed("Unable to save %s: %v", res.Label(), err)
		outcome.Result, outcome.Err = ResultFailed, err
		r.summary.add(outcome)
		return nil
	}
	outcome.Result = ResultInstalled
	r.summary.add(outcome)

	header, ok := manifest.Extract(string(body))
	if !ok {
		in.report.OK("%s is added", res.Label())
		in.report.Info("Empty manifest: %s", res.Label())
		return nil
	}

	if r.opts.ShowManifest {
		in.report.OK("%s is added, printing manifest", res.Label())
		in.report.Block(in.render(header.Text()))
	} else {
		in.report.OK("%s is added", res.Label())
	}

	return in.reconcile(ctx, r, header.Dependencies)
}

// reconcile installs the @npm packages of a freshly written file that the
// project does not resolve yet.
func (in *Installer) reconcile(ctx context.Context, r *run, tokens []string) error {
	if r.opts.SkipDeps || in.deps == nil || in.packages == nil || len(tokens) == 0 {
		return nil
	}

	resolved, err := in.deps.ResolvedDependencies()
	if err != nil {
		in.report.Warn("Unable to read project dependencies: %v", err)
		resolved = nil
	}

	missing := Missing(tokens, resolved, r.installed)
	if len(missing) == 0 {
		in.report.Progress("Dependencies are already installed: %s", strings.Join(tokens, ", "))
		return nil
	}

	if !r.opts.AutoDeps {
		ok, err := in.confirm.Confirm(ctx, "Install dependencies automatically?")
		if err != nil {
			return confirmError(ctx, err)
		}
		if !ok {
			in.report.Info("Automatic dependency install is skipped. Please install @npm packages: %s", strings.Join(missing, ", "))
			return nil
		}
	}

	results := in.packages.Install(ctx, missing)
	if ctx.Err() != nil {
		return interrupted(ctx)
	}
	for _, res := range results {
		r.summary.Packages = append(r.summary.Packages, res)
		if !res.OK() {
			in.report.Failed("Unable to install package %s: %v", res.Name, res.Err)
			continue
		}
		r.installed[res.Name] = struct{}{}
		in.report.OK("Installed package: %s", res.Name)
	}

	return nil
}

// Missing returns tokens not present in any of the given sets, in order of
// first appearance and without duplicates. Only exact matches are removed.
func Missing(tokens []string, have ...map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(tokens))
	var missing []string

outer:
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		for _, set := range have {
			if _, ok := set[t]; ok {
				continue outer
			}
		}
		missing = append(missing, t)
	}

	return missing
}

func interrupted(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
}

func confirmError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return interrupted(ctx)
	}
	return fmt.Errorf("failed to ask for confirmation: %w", err)
}

func title(k registry.Kind) string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}
