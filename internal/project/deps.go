package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	npmLockFile  = "package-lock.json"
	pnpmLockFile = "pnpm-lock.yaml"
)

// packageJSON holds the dependency sections of a package.json
type packageJSON struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// npmLock covers lockfileVersion 1 (dependencies) and 2/3 (packages)
type npmLock struct {
	Packages     map[string]json.RawMessage `json:"packages"`
	Dependencies map[string]json.RawMessage `json:"dependencies"`
}

type pnpmImporter struct {
	Dependencies         map[string]yaml.Node `yaml:"dependencies"`
	DevDependencies      map[string]yaml.Node `yaml:"devDependencies"`
	OptionalDependencies map[string]yaml.Node `yaml:"optionalDependencies"`
}

// pnpmLock covers both the importers layout and the older flat layout
type pnpmLock struct {
	Importers            map[string]pnpmImporter `yaml:"importers"`
	Dependencies         map[string]yaml.Node    `yaml:"dependencies"`
	DevDependencies      map[string]yaml.Node    `yaml:"devDependencies"`
	OptionalDependencies map[string]yaml.Node    `yaml:"optionalDependencies"`
	Packages             map[string]yaml.Node    `yaml:"packages"`
}

// ResolvedDependencies returns every package name the project at root
// already declares or has resolved: package.json sections plus whatever
// package-lock.json and pnpm-lock.yaml list. Missing files are skipped.
func ResolvedDependencies(root string) (map[string]struct{}, error) {
	names := make(map[string]struct{})

	if err := readPackageJSON(filepath.Join(root, PackageFile), names); err != nil {
		return nil, err
	}
	if err := readNpmLock(filepath.Join(root, npmLockFile), names); err != nil {
		return nil, err
	}
	if err := readPnpmLock(filepath.Join(root, pnpmLockFile), names); err != nil {
		return nil, err
	}

	return names, nil
}

func readPackageJSON(path string, names map[string]struct{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, section := range []map[string]string{
		pkg.Dependencies,
		pkg.DevDependencies,
		pkg.PeerDependencies,
		pkg.OptionalDependencies,
	} {
		for name := range section {
			names[name] = struct{}{}
		}
	}
	return nil
}

func readNpmLock(path string, names map[string]struct{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var lock npmLock
	if err := json.Unmarshal(data, &lock); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for key := range lock.Packages {
		// "" is the root project; nested installs look like
		// node_modules/a/node_modules/b
		i := strings.LastIndex(key, "node_modules/")
		if i < 0 {
			continue
		}
		if name := key[i+len("node_modules/"):]; name != "" {
			names[name] = struct{}{}
		}
	}
	for name := range lock.Dependencies {
		names[name] = struct{}{}
	}
	return nil
}

func readPnpmLock(path string, names map[string]struct{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var lock pnpmLock
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	addKeys := func(m map[string]yaml.Node) {
		for name := range m {
			names[name] = struct{}{}
		}
	}

	for _, imp := range lock.Importers {
		addKeys(imp.Dependencies)
		addKeys(imp.DevDependencies)
		addKeys(imp.OptionalDependencies)
	}
	addKeys(lock.Dependencies)
	addKeys(lock.DevDependencies)
	addKeys(lock.OptionalDependencies)

	for key := range lock.Packages {
		if name := pnpmPackageName(key); name != "" {
			names[name] = struct{}{}
		}
	}
	return nil
}

// pnpmPackageName extracts the package name from a pnpm packages key.
// Keys look like "/clsx@2.1.0", "clsx@2.1.0", "/@scope/pkg@1.0.0(react@18.2.0)"
// or, in lockfile v5, "/clsx/2.1.0".
func pnpmPackageName(key string) string {
	key = strings.TrimPrefix(key, "/")
	if i := strings.Index(key, "("); i >= 0 {
		key = key[:i]
	}

	// Skip a leading '@' so scoped names are not cut at the scope
	if at := strings.LastIndex(key, "@"); at > 0 {
		return key[:at]
	}

	// v5 form: name/version or @scope/name/version
	parts := strings.Split(key, "/")
	switch {
	case strings.HasPrefix(key, "@") && len(parts) >= 3:
		return parts[0] + "/" + parts[1]
	case !strings.HasPrefix(key, "@") && len(parts) >= 2:
		return parts[0]
	}
	return ""
}
