package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Action is what to do with a fetched file
type Action int

const (
	ActionWrite Action = iota
	ActionSkip
	ActionAsk
)

func (a Action) String() string {
	switch a {
	case ActionWrite:
		return "write"
	case ActionSkip:
		return "skip"
	case ActionAsk:
		return "ask"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// WritePlan is the decision for a single target path
type WritePlan struct {
	Path   string
	Action Action
}

// Plan decides whether content may be written to path. Empty content is
// always skipped. A missing file, or overwrite, means write; an existing
// file without overwrite needs the user's permission.
func Plan(path string, overwrite bool, content []byte) (WritePlan, error) {
	p := WritePlan{Path: path}

	if len(content) == 0 {
		p.Action = ActionSkip
		return p, nil
	}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		p.Action = ActionWrite
	case err != nil:
		return p, fmt.Errorf("failed to check %s: %w", path, err)
	case overwrite:
		p.Action = ActionWrite
	default:
		p.Action = ActionAsk
	}

	return p, nil
}
