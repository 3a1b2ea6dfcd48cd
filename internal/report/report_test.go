package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormat_Badges(t *testing.T) {
	tests := []struct {
		level Level
		tag   string
	}{
		{LevelOK, "OK"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelFailed, "FAILED"},
	}

	for _, tt := range tests {
		got := Format(tt.level, "hello")
		if !strings.HasPrefix(got, "[") {
			t.Errorf("Format(%s) = %q, want bracketed badge", tt.level, got)
		}
		if !strings.Contains(got, tt.tag) {
			t.Errorf("Format(%s) = %q, want tag %q", tt.level, got, tt.tag)
		}
		if !strings.HasSuffix(got, "] hello") {
			t.Errorf("Format(%s) = %q, want message after badge", tt.level, got)
		}
	}
}

func TestFormat_IsPure(t *testing.T) {
	if Format(LevelWarn, "x") != Format(LevelWarn, "x") {
		t.Error("Format should return identical output for identical input")
	}
}

func TestReporter_ProgressRespectsVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer

	New(&quiet, false).Progress("step %d", 1)
	New(&loud, true).Progress("step %d", 1)

	if quiet.Len() != 0 {
		t.Errorf("quiet reporter printed %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "step 1") {
		t.Errorf("verbose reporter printed %q, want step line", loud.String())
	}
}

func TestReporter_LevelsAlwaysPrint(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	r.OK("ok line")
	r.Info("info line")
	r.Warn("warn line")
	r.Failed("failed line")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), buf.String())
	}
	for i, want := range []string{"ok line", "info line", "warn line", "failed line"} {
		if !strings.HasSuffix(lines[i], want) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], want)
		}
	}
}
