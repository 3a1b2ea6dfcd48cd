package install

import (
	"fmt"

	"tailfront/internal/project"
)

// Result is the terminal state of one registry file
type Result int

const (
	ResultInstalled Result = iota
	ResultSkippedExisting
	ResultSkippedEmpty
	ResultNotFound
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultInstalled:
		return "installed"
	case ResultSkippedExisting:
		return "skipped (exists)"
	case ResultSkippedEmpty:
		return "skipped (empty)"
	case ResultNotFound:
		return "not found"
	case ResultFailed:
		return "failed"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Outcome records what happened to one registry file of a requested asset
type Outcome struct {
	Name   string // requested asset name
	File   string // registry-relative file, e.g. "dark/lib.js"
	Result Result
	Err    error // reason, set iff Result == ResultFailed
}

// Summary aggregates the outcomes of one run, in processing order
type Summary struct {
	Outcomes []Outcome
	Packages []project.PackageResult
}

func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
}

// Count returns how many files ended with result r
func (s *Summary) Count(r Result) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Result == r {
			n++
		}
	}
	return n
}

// Installed returns the number of files written
func (s *Summary) Installed() int {
	return s.Count(ResultInstalled)
}

// FailedPackages returns the package installs that did not succeed
func (s *Summary) FailedPackages() []project.PackageResult {
	var failed []project.PackageResult
	for _, p := range s.Packages {
		if !p.OK() {
			failed = append(failed, p)
		}
	}
	return failed
}
