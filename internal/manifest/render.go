package manifest

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Render formats humanized header text as terminal markdown. Fenced
// @example blocks get syntax highlighting. width <= 0 disables wrapping.
func Render(text string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}

	out, err := renderer.Render(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
