package project

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestLocate_FindsNearestPackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), "{}")
	nested := filepath.Join(root, "src", "components", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Locate(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("Locate() = %q, want %q", got, want)
	}
}

func TestLocate_FallsBackToStart(t *testing.T) {
	start := t.TempDir()

	got, err := Locate(start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// An ancestor of the temp dir could in theory hold a package.json;
	// the result is then that ancestor, otherwise start itself.
	if !strings.HasPrefix(start, got) {
		t.Errorf("Locate() = %q, want %q or an ancestor", got, start)
	}
}

func TestResolvedDependencies_NoFiles(t *testing.T) {
	deps, err := ResolvedDependencies(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deps) != 0 {
		t.Errorf("got %v, want empty set", sortedKeys(deps))
	}
}

func TestResolvedDependencies_PackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "app",
  "dependencies": {"react": "^18.2.0"},
  "devDependencies": {"typescript": "^5.0.0"},
  "peerDependencies": {"react-dom": "^18.2.0"},
  "optionalDependencies": {"fsevents": "*"}
}`)

	deps, err := ResolvedDependencies(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"fsevents", "react", "react-dom", "typescript"}
	if got := sortedKeys(deps); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("deps = %v, want %v", got, want)
	}
}

func TestResolvedDependencies_NpmLock(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package-lock.json"), `{
  "lockfileVersion": 3,
  "packages": {
    "": {"name": "app"},
    "node_modules/clsx": {"version": "2.1.0"},
    "node_modules/@radix-ui/react-slot": {"version": "1.0.2"},
    "node_modules/a/node_modules/b": {"version": "1.0.0"}
  }
}`)

	deps, err := ResolvedDependencies(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"@radix-ui/react-slot", "b", "clsx"}
	if got := sortedKeys(deps); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("deps = %v, want %v", got, want)
	}
}

func TestResolvedDependencies_PnpmLock(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pnpm-lock.yaml"), `lockfileVersion: '9.0'
importers:
  .:
    dependencies:
      react:
        specifier: ^18.2.0
        version: 18.2.0
    devDependencies:
      tailwindcss:
        specifier: ^3.4.0
        version: 3.4.1
packages:
  clsx@2.1.0:
    resolution: {integrity: sha512-abc}
  '@floating-ui/dom@1.6.0':
    resolution: {integrity: sha512-def}
  /legacy@1.0.0(react@18.2.0):
    resolution: {integrity: sha512-ghi}
`)

	deps, err := ResolvedDependencies(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"@floating-ui/dom", "clsx", "legacy", "react", "tailwindcss"}
	if got := sortedKeys(deps); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("deps = %v, want %v", got, want)
	}
}

func TestResolvedDependencies_MalformedPackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), "{not json")

	if _, err := ResolvedDependencies(root); err == nil {
		t.Fatal("expected error for malformed package.json")
	}
}

func TestPnpmPackageName(t *testing.T) {
	tests := map[string]string{
		"/clsx@2.1.0":                     "clsx",
		"clsx@2.1.0":                      "clsx",
		"/@scope/pkg@1.0.0(react@18.2.0)": "@scope/pkg",
		"@scope/pkg@1.0.0":                "@scope/pkg",
		"/clsx/2.1.0":                     "clsx",
		"/@scope/pkg/1.0.0":               "@scope/pkg",
		"/lonely":                         "",
	}
	for key, want := range tests {
		if got := pnpmPackageName(key); got != want {
			t.Errorf("pnpmPackageName(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestDetectManager(t *testing.T) {
	tests := []struct {
		lockfile string
		want     Manager
	}{
		{"", ManagerNPM},
		{"package-lock.json", ManagerNPM},
		{"pnpm-lock.yaml", ManagerPNPM},
		{"yarn.lock", ManagerYarn},
		{"bun.lockb", ManagerBun},
	}
	for _, tt := range tests {
		root := t.TempDir()
		if tt.lockfile != "" {
			writeFile(t, filepath.Join(root, tt.lockfile), "")
		}
		if got := DetectManager(root); got != tt.want {
			t.Errorf("DetectManager(%q) = %s, want %s", tt.lockfile, got, tt.want)
		}
	}
}

func TestParseManager(t *testing.T) {
	if m, err := ParseManager(" PNPM "); err != nil || m != ManagerPNPM {
		t.Errorf("ParseManager(PNPM) = %q, %v", m, err)
	}
	if _, err := ParseManager("cargo"); err == nil {
		t.Error("expected error for unknown manager")
	}
}

func TestManagerAddArgs(t *testing.T) {
	if got := strings.Join(ManagerNPM.AddArgs("clsx"), " "); got != "install clsx" {
		t.Errorf("npm args = %q", got)
	}
	if got := strings.Join(ManagerPNPM.AddArgs("clsx"), " "); got != "add clsx" {
		t.Errorf("pnpm args = %q", got)
	}
}

func TestRunnerInstall_MissingBinary(t *testing.T) {
	r := NewRunner(t.TempDir(), ManagerNPM, WithBinary("tailfront-no-such-binary"))

	results := r.Install(context.Background(), []string{"clsx", "react"})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, res := range results {
		if res.OK() || !errors.Is(res.Err, ErrNoManager) {
			t.Errorf("result %s err = %v, want ErrNoManager", res.Name, res.Err)
		}
	}
}

func TestRunnerInstall_PerPackageResults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the package manager")
	}

	root := t.TempDir()
	script := filepath.Join(root, "fake-pm")
	writeFile(t, script, "#!/bin/sh\necho \"$@\" >> calls.log\nif [ \"$2\" = \"broken\" ]; then echo 'E404 broken' >&2; exit 1; fi\n")
	if err := os.Chmod(script, 0o755); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	r := NewRunner(root, ManagerPNPM, WithBinary(script), WithStreams(nil, &stdout, &stderr))

	results := r.Install(context.Background(), []string{"clsx", "broken", "react"})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if !results[0].OK() || results[1].OK() || !results[2].OK() {
		t.Errorf("results = %+v, want ok/failed/ok", results)
	}
	if !strings.Contains(results[1].Err.Error(), "E404 broken") {
		t.Errorf("failure should carry stderr, got %v", results[1].Err)
	}

	calls, err := os.ReadFile(filepath.Join(root, "calls.log"))
	if err != nil {
		t.Fatal(err)
	}
	want := "add clsx\nadd broken\nadd react\n"
	if string(calls) != want {
		t.Errorf("calls = %q, want %q", calls, want)
	}
}
