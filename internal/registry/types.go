package registry

import (
	"fmt"
	"path"
	"strings"
)

// Kind identifies what sort of asset a name refers to
type Kind int

const (
	KindComponent Kind = iota
	KindTheme
)

// ThemeFiles are the registry files making up one theme, in fetch order
var ThemeFiles = []string{"preset.js", "lib.js"}

// ComponentExt is appended to a component name to form its file name
const ComponentExt = ".tsx"

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindTheme:
		return "theme"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Status classifies the outcome of a registry fetch
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusTransportError
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not found"
	case StatusTransportError:
		return "transport error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Resource is a single registry file belonging to an asset
type Resource struct {
	Kind Kind
	Name string // asset name as requested, e.g. "button" or "dark"
	File string // slash-separated path relative to the registry root and install dir
}

// Resources expands an asset name into the registry files it consists of.
// A component is one <name>.tsx file; a theme is <name>/preset.js and
// <name>/lib.js, in that order.
func Resources(kind Kind, name string) []Resource {
	switch kind {
	case KindTheme:
		res := make([]Resource, 0, len(ThemeFiles))
		for _, f := range ThemeFiles {
			res = append(res, Resource{Kind: kind, Name: name, File: path.Join(name, f)})
		}
		return res
	default:
		return []Resource{{Kind: KindComponent, Name: name, File: name + ComponentExt}}
	}
}

// Label is the name used when reporting about the resource
func (r Resource) Label() string {
	if r.Kind == KindTheme {
		return r.File
	}
	return r.Name
}

// Base is the file name without any directory part
func (r Resource) Base() string {
	return path.Base(r.File)
}

// FetchResult is the classified outcome of fetching one resource
type FetchResult struct {
	Status     Status
	Body       []byte // present iff Status == StatusFound
	StatusCode int
	URL        string
	Err        error // set iff Status == StatusTransportError
}

// StatusError reports an HTTP status that is neither 200 nor 404
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// ValidateName rejects names that would escape the registry root or the
// install directory.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty asset name")
	}
	if strings.ContainsAny(name, `\`) || strings.HasPrefix(name, "/") {
		return fmt.Errorf("invalid asset name %q", name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." || part == "." || part == "" {
			return fmt.Errorf("invalid asset name %q", name)
		}
	}
	return nil
}
