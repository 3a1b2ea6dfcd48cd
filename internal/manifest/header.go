// Package manifest extracts the JSDoc header that registry assets carry
// at the top of their source: a human readable description plus the
// @npm annotations naming the packages the asset depends on.
package manifest

import (
	"regexp"
	"strings"
)

// DependencyTag marks a package dependency inside a header block
const DependencyTag = "@npm"

var (
	blockRe      = regexp.MustCompile(`(?s)/\*\*.*?\*/`)
	dependencyRe = regexp.MustCompile(regexp.QuoteMeta(DependencyTag) + `[ \t]+([^\r\n]*)`)
)

// Header is the first doc comment block found in an asset
type Header struct {
	Raw          string   // the block exactly as it appears in the file
	Dependencies []string // @npm tokens in order of appearance, duplicates kept
}

// Extract returns the first /** ... */ block of content. Content without
// such a block has no header; that is not an error.
func Extract(content string) (*Header, bool) {
	raw := blockRe.FindString(content)
	if raw == "" {
		return nil, false
	}
	return &Header{
		Raw:          raw,
		Dependencies: Dependencies(raw),
	}, true
}

// Text is the humanized form of the header, for display only
func (h *Header) Text() string {
	return Humanize(h.Raw)
}

// Humanize strips the comment delimiters and the leading '*' of every
// line. The result is lossy and must never be written back to disk.
func Humanize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed, "*")
			trimmed = strings.TrimPrefix(trimmed, " ")
			line = trimmed
		}
		lines[i] = line
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Dependencies scans a raw header block for @npm annotations. Each
// annotation may name several packages separated by spaces or commas.
func Dependencies(raw string) []string {
	var deps []string
	for _, m := range dependencyRe.FindAllStringSubmatch(raw, -1) {
		rest := m[1]
		if i := strings.Index(rest, "*/"); i >= 0 {
			rest = rest[:i]
		}
		fields := strings.FieldsFunc(rest, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		deps = append(deps, fields...)
	}
	return deps
}
